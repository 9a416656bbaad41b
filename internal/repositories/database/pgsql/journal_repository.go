package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/corebank/ledger/internal/apperrors"
	"github.com/corebank/ledger/internal/core/domain"
	portsrepo "github.com/corebank/ledger/internal/core/ports/repositories"
	"github.com/corebank/ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalRepository persists journal entries. The table is append-only:
// no UPDATE or DELETE statement exists anywhere in this file, matching the
// append-only contract of the port.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `entry_id, account_id, debit, credit, description, created_at, updated_at`

const insertEntryQuery = `
	INSERT INTO journal_entries (entry_id, account_id, debit, credit, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.AccountID,
		&e.Debit,
		&e.Credit,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry appends one journal entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	_, err := r.Pool.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		entry.AccountID,
		entry.Debit,
		entry.Credit,
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert journal entry "+entry.EntryID, err)
	}
	return nil
}

// SaveEntryInTx appends one journal entry within a given transaction.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	_, err := tx.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		entry.AccountID,
		entry.Debit,
		entry.Credit,
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert journal entry "+entry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find journal entry by ID "+entryID, err)
	}
	return entry, nil
}

// FindEntriesByAccountID retrieves all journal entries for an account in
// insertion order. The seq column is assigned by the database on append, so
// the order is stable and restartable across repeated iterations.
func (r *PgxJournalRepository) FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE account_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query journal entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan journal entry row for account "+accountID, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating journal entry rows for account "+accountID, err)
	}

	return entries, nil
}

// ListEntriesByAccountID retrieves a paginated list of journal entries for an
// account using token-based pagination. It returns the entries, a token for
// the next page, and an error.
func (r *PgxJournalRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20 // Or a configurable default
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE account_id = $1
	`
	// Ordering must be stable; (created_at, entry_id) matches the cursor.
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)
		baseQuery = baseQuery + " " + cursorClause
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query journal entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan journal entry row for account "+accountID, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating journal entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1] // The actual last item of the current page
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return entries, nextTokenVal, nil
}
