package services

import (
	"context"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for the ledger
type LedgerReaderSvc interface {
	// GetEntriesByAccount retrieves the account's journal entries in insertion order.
	GetEntriesByAccount(ctx context.Context, accountID string) ([]domain.JournalEntry, error)

	// ListEntriesByAccount retrieves a paginated list of journal entries.
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for the ledger
type LedgerWriterSvc interface {
	// PostToLedger appends one journal entry for the account. It fails with
	// ErrValidation when debit or credit is negative or both are zero, and
	// with ErrNotFound when the account does not exist.
	PostToLedger(ctx context.Context, accountID string, debit, credit int64, description string) (*domain.JournalEntry, error)
}

// LedgerCalculatorSvc defines derivation operations over the journal history
type LedgerCalculatorSvc interface {
	// CalculateAccountBalance folds the account's entries as Σ(debit − credit).
	// Pure with respect to mutation; at any quiescent point the result equals
	// the account's cached balance.
	CalculateAccountBalance(ctx context.Context, accountID string) (int64, error)

	// ReconcileAccount recomputes the balance from the journal and compares it
	// to the cached account balance, reporting any drift.
	ReconcileAccount(ctx context.Context, accountID string) (*domain.ReconciliationResult, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerCalculatorSvc
}
