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

// ledgerService posts journal entries and derives account balances from the
// journal history. Derivations never write.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostToLedger appends one journal entry for the account.
func (s *ledgerService) PostToLedger(ctx context.Context, accountID string, debit, credit int64, description string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if debit < 0 || credit < 0 {
		return nil, fmt.Errorf("%w: debit and credit must be non-negative, got debit=%d credit=%d", apperrors.ErrValidation, debit, credit)
	}
	if debit == 0 && credit == 0 {
		return nil, fmt.Errorf("%w: journal entry must carry a debit or a credit", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch account for ledger post", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", accountID),
		slog.Int64("debit", debit),
		slog.Int64("credit", credit),
	)
	return &entry, nil
}

// GetEntriesByAccount retrieves the account's journal entries in insertion order.
func (s *ledgerService) GetEntriesByAccount(ctx context.Context, accountID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.FindEntriesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries for account %s: %w", accountID, err)
	}
	return entries, nil
}

// ListEntriesByAccount retrieves a paginated list of journal entries for an account.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CalculateAccountBalance folds the account's entries as Σ(debit − credit).
// All arithmetic stays in int64 minor units.
func (s *ledgerService) CalculateAccountBalance(ctx context.Context, accountID string) (int64, error) {
	entries, err := s.journalRepo.FindEntriesByAccountID(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch journal entries for account %s: %w", accountID, err)
	}

	var balance int64
	for _, entry := range entries {
		balance += entry.SignedAmount()
	}
	return balance, nil
}

// ReconcileAccount recomputes the balance from the full journal history and
// compares it to the cached account balance. At any quiescent point (no
// in-flight authorization on the account) the two must agree; a non-zero
// drift indicates a broken invariant that needs operator attention.
func (s *ledgerService) ReconcileAccount(ctx context.Context, accountID string) (*domain.ReconciliationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	computed, err := s.CalculateAccountBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconciliationResult{
		AccountID:       accountID,
		CachedBalance:   account.Balance,
		ComputedBalance: computed,
		Drift:           account.Balance - computed,
		Consistent:      account.Balance == computed,
	}

	if !result.Consistent {
		logger.Error("Account balance out of sync with journal",
			slog.String("account_id", accountID),
			slog.Int64("cached_balance", result.CachedBalance),
			slog.Int64("computed_balance", result.ComputedBalance),
			slog.Int64("drift", result.Drift),
		)
	}

	return result, nil
}
