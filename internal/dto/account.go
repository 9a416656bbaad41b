package dto

import (
	"time"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest is the payload for opening a new account.
// Accounts always open with a zero balance; opening funds arrive as a deposit
// transaction so the balance stays equal to the journal from birth.
type OpenAccountRequest struct {
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS MONEY_MARKET"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	AccountType    string          `json:"accountType"`
	Status         string          `json:"status"`
	Balance        int64           `json:"balance"`
	DisplayBalance decimal.Decimal `json:"displayBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		AccountType:    string(a.AccountType),
		Status:         string(a.Status),
		Balance:        a.Balance,
		DisplayBalance: money.ToDisplay(a.Balance),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ReconciliationResponse reports the drift between an account's cached balance
// and the balance recomputed from its journal history.
type ReconciliationResponse struct {
	AccountID       string `json:"accountID"`
	CachedBalance   int64  `json:"cachedBalance"`
	ComputedBalance int64  `json:"computedBalance"`
	Drift           int64  `json:"drift"`
	Consistent      bool   `json:"consistent"`
}

// ToReconciliationResponse converts a domain.ReconciliationResult to its DTO.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:       r.AccountID,
		CachedBalance:   r.CachedBalance,
		ComputedBalance: r.ComputedBalance,
		Drift:           r.Drift,
		Consistent:      r.Consistent,
	}
}
