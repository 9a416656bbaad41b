package repositories

import (
	"context"
	"time"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// ApplyBalanceDelta atomically adds delta (negative for withdrawals) to the
	// account balance and returns the updated account. The mutation is a single
	// read-modify-write at the store, linearizable with respect to concurrent
	// deltas on the same account.
	ApplyBalanceDelta(ctx context.Context, accountID string, delta int64, now time.Time) (*domain.Account, error)

	// UpdateAccountStatus moves an account between ACTIVE and FROZEN.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error

	// CloseAccount marks the account CLOSED. It fails with ErrConflict while
	// the account still has pending transactions; the guard and the status
	// write are one atomic statement.
	CloseAccount(ctx context.Context, accountID string, now time.Time) error
}

// AccountTransactionSupport defines account operations used inside an
// authorization unit of work.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects the account and locks its row within tx.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// ApplyBalanceDeltaInTx applies the balance delta within a given transaction.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta int64, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
