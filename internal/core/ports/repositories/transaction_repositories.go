package repositories

import (
	"context"
	"time"

	"github.com/corebank/ledger/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves every transaction referencing the
	// account, in insertion order. Used for stats folding.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions for
	// an account using token-based pagination. It returns the transactions, a
	// token for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new pending transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus is a compare-and-set on the transaction status,
	// keyed on the id and the expected prior status. A transition attempted
	// against a transaction no longer in the expected status fails with
	// ErrInvalidState (or ErrNotFound when no such transaction exists); it is
	// never silently overwritten.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, now time.Time) error

	// AuthorizeTransaction performs the authorization unit of work: the status
	// compare-and-set from PENDING to AUTHORIZED, the account balance delta,
	// and the journal entry append commit atomically or not at all. Concurrent
	// calls for the same transaction serialize on the compare-and-set; the
	// loser observes ErrInvalidState and no durable effect.
	AuthorizeTransaction(ctx context.Context, txn domain.Transaction, entry domain.JournalEntry, delta int64, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
