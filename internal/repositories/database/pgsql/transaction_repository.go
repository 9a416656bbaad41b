package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/corebank/ledger/internal/apperrors"
	"github.com/corebank/ledger/internal/core/domain"
	portsrepo "github.com/corebank/ledger/internal/core/ports/repositories"
	"github.com/corebank/ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
	journalRepo portsrepo.JournalTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account and journal repositories are injected so the authorization unit
// of work can span all three tables in one database transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport, journalRepo portsrepo.JournalTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		journalRepo:    journalRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, transaction_type, status, amount, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountID,
		&t.Type,
		&t.Status,
		&t.Amount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTransaction inserts a new pending transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, account_id, transaction_type, status, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.Type,
		txn.Status,
		txn.Amount,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find transaction by ID "+transactionID, err)
	}
	return txn, nil
}

// FindTransactionsByAccountID retrieves every transaction for the account in
// insertion order.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan transaction row for account "+accountID, err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating transaction rows for account "+accountID, err)
	}

	return txns, nil
}

// ListTransactionsByAccountID retrieves a paginated list of transactions for
// an account using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20 // Or a configurable default
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	// Ordering must be stable; (created_at, transaction_id) matches the cursor.
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTxnID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		cursorClause := `AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastTxnID)
		baseQuery = baseQuery + " " + cursorClause
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan transaction row for account "+accountID, err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1] // The actual last item of the current page
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}

	return txns, nextTokenVal, nil
}

// casStatus runs the compare-and-set on the transaction status inside tx and
// maps a zero-row result to ErrNotFound or ErrInvalidState.
func (r *PgxTransactionRepository) casStatus(ctx context.Context, tx pgx.Tx, transactionID string, from, to domain.TransactionStatus, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, updated_at = $3
		WHERE transaction_id = $1 AND status = $4;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, to, now, from)
	if err != nil {
		return apperrors.NewStorageError("failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var status domain.TransactionStatus
		err := tx.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1`, transactionID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewStorageError("failed to re-read transaction "+transactionID, err)
		}
		return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrInvalidState, transactionID, status, from)
	}
	return nil
}

// UpdateTransactionStatus is a compare-and-set on the transaction status.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.casStatus(ctx, tx, transactionID, from, to, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AuthorizeTransaction performs the authorization unit of work in one
// database transaction:
//
//  1. compare-and-set the status from PENDING to AUTHORIZED — this is the
//     serialization point; a concurrent authorizer that lost the race gets
//     ErrInvalidState and nothing else happens,
//  2. apply the balance delta to the account row,
//  3. append the journal entry.
//
// Either all three writes commit or the transaction rolls back, so the system
// can never persist an authorized-looking balance without its journal entry
// or terminal status.
func (r *PgxTransactionRepository) AuthorizeTransaction(ctx context.Context, txn domain.Transaction, entry domain.JournalEntry, delta int64, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.casStatus(ctx, tx, txn.TransactionID, domain.Pending, domain.Authorized, now); err != nil {
		return err
	}

	if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, txn.AccountID, delta, now); err != nil {
		return err
	}

	if err := r.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
