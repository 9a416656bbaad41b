package services

import (
	"context"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines lifecycle operations for accounts
type AccountWriterSvc interface {
	// OpenAccount creates a new ACTIVE account with a zero balance.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.Account, error)

	// FreezeAccount moves an ACTIVE account to FROZEN.
	FreezeAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// UnfreezeAccount moves a FROZEN account back to ACTIVE.
	UnfreezeAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// CloseAccount marks the account CLOSED. Refused with ErrConflict while
	// pending transactions reference the account. Accounts are never deleted.
	CloseAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
