package dto

import (
	"time"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// PostEntryRequest is the payload for posting a journal entry directly,
// outside the transaction authorization path (manual adjustments).
// Debit and credit are minor currency units; at least one must be non-zero.
type PostEntryRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	Debit       int64  `json:"debit" binding:"gte=0"`
	Credit      int64  `json:"credit" binding:"gte=0"`
	Description string `json:"description" binding:"required"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	Debit         int64           `json:"debit"`
	Credit        int64           `json:"credit"`
	DisplayDebit  decimal.Decimal `json:"displayDebit"`
	DisplayCredit decimal.Decimal `json:"displayCredit"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		AccountID:     e.AccountID,
		Debit:         e.Debit,
		Credit:        e.Credit,
		DisplayDebit:  money.ToDisplay(e.Debit),
		DisplayCredit: money.ToDisplay(e.Credit),
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ListEntriesParams holds pagination parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of journal entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// BalanceResponse carries a balance recomputed from the journal.
type BalanceResponse struct {
	AccountID      string          `json:"accountID"`
	Balance        int64           `json:"balance"`
	DisplayBalance decimal.Decimal `json:"displayBalance"`
}

// NewBalanceResponse builds a BalanceResponse for an account balance in minor units.
func NewBalanceResponse(accountID string, balance int64) BalanceResponse {
	return BalanceResponse{
		AccountID:      accountID,
		Balance:        balance,
		DisplayBalance: money.ToDisplay(balance),
	}
}
