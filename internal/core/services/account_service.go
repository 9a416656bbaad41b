package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger/internal/apperrors"
	"github.com/corebank/ledger/internal/core/domain"
	portsrepo "github.com/corebank/ledger/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledger/internal/core/ports/services"
	"github.com/corebank/ledger/internal/dto"
	"github.com/corebank/ledger/internal/middleware"
)

// accountService handles account lifecycle. Balances are never written here:
// the only balance mutation points are the authorization unit of work and the
// repository's atomic delta.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a new ACTIVE account with a zero balance. Opening funds
// arrive as a deposit transaction, which keeps balance == Σ journal entries
// from the account's first moment.
func (s *accountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: req.AccountType,
		Status:      domain.AccountActive,
		Balance:     0,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account opened", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) setStatus(ctx context.Context, accountID string, from, to domain.AccountStatus) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.Status != from {
		return nil, fmt.Errorf("%w: account %s is %s, expected %s", apperrors.ErrInvalidState, accountID, account.Status, from)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, to, now); err != nil {
		logger.Error("Failed to update account status", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("status", string(to)))
		return nil, fmt.Errorf("failed to update account %s status: %w", accountID, err)
	}

	account.Status = to
	account.UpdatedAt = now
	logger.Info("Account status updated", slog.String("account_id", accountID), slog.String("status", string(to)))
	return account, nil
}

// FreezeAccount moves an ACTIVE account to FROZEN.
func (s *accountService) FreezeAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.setStatus(ctx, accountID, domain.AccountActive, domain.AccountFrozen)
}

// UnfreezeAccount moves a FROZEN account back to ACTIVE.
func (s *accountService) UnfreezeAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.setStatus(ctx, accountID, domain.AccountFrozen, domain.AccountActive)
}

// CloseAccount marks the account CLOSED. The repository refuses the close
// while pending transactions reference the account; the check and the write
// are a single guarded statement, so no pending transaction can slip in
// between them. Accounts are never deleted.
func (s *accountService) CloseAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is already closed", apperrors.ErrInvalidState, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.CloseAccount(ctx, accountID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Refused to close account with pending transactions", slog.String("account_id", accountID))
			return nil, fmt.Errorf("%w: account %s has pending transactions", apperrors.ErrConflict, accountID)
		}
		logger.Error("Failed to close account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to close account %s: %w", accountID, err)
	}

	account.Status = domain.AccountClosed
	account.UpdatedAt = now
	logger.Info("Account closed", slog.String("account_id", accountID))
	return account, nil
}
