package repositories

import (
	"context"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByAccountID retrieves all journal entries for an account in
	// insertion order. The sequence is finite and restartable: repeated calls
	// iterate the same history for recomputation.
	FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.JournalEntry, error)

	// ListEntriesByAccountID retrieves a paginated list of journal entries for
	// an account using token-based pagination.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
//
// The interface is deliberately append-only: no update or delete exists, so a
// posted entry can never be mutated out from under the balance invariant.
type JournalWriter interface {
	// SaveEntry appends one journal entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalTransactionSupport defines journal operations used inside an
// authorization unit of work.
type JournalTransactionSupport interface {
	// SaveEntryInTx appends one journal entry within a given transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalTransactionSupport
}
