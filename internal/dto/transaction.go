package dto

import (
	"time"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the intake payload for a new pending transaction.
// Amount is in minor currency units and must be positive.
type CreateTransactionRequest struct {
	AccountID string                 `json:"accountID" binding:"required"`
	Type      domain.TransactionType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount    int64                  `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Amount        int64           `json:"amount"`
	DisplayAmount decimal.Decimal `json:"displayAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount,
		DisplayAmount: money.ToDisplay(t.Amount),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// StatsResponse summarizes authorized activity for an account.
type StatsResponse struct {
	TotalDeposits     int64 `json:"totalDeposits"`
	TotalWithdrawals  int64 `json:"totalWithdrawals"`
	NetAmount         int64 `json:"netAmount"`
	TotalTransactions int   `json:"totalTransactions"`
}

// ToStatsResponse converts domain.Stats to its DTO.
func ToStatsResponse(s *domain.Stats) StatsResponse {
	return StatsResponse{
		TotalDeposits:     s.TotalDeposits,
		TotalWithdrawals:  s.TotalWithdrawals,
		NetAmount:         s.NetAmount,
		TotalTransactions: s.TotalTransactions,
	}
}
