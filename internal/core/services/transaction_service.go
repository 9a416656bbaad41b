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

// transactionService owns the transaction state machine: it validates
// transitions and orchestrates the account, transaction, and journal stores
// as one logical unit of work during authorization.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction persists a new transaction in the PENDING state.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %d", apperrors.ErrValidation, req.Amount)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch account for transaction intake", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if !account.IsOpen() {
		return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrConflict, req.AccountID)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Type:          req.Type,
		Status:        domain.Pending,
		Amount:        req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("type", string(txn.Type)),
		slog.Int64("amount", txn.Amount),
	)
	return &txn, nil
}

// GetTransactionByID retrieves a specific transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// entryDescription builds the ledger description for an authorized
// transaction, carrying the transaction id for traceability.
func entryDescription(txn domain.Transaction) string {
	if txn.Type == domain.Withdrawal {
		return fmt.Sprintf("Withdrawal transaction %s", txn.TransactionID)
	}
	return fmt.Sprintf("Deposit transaction %s", txn.TransactionID)
}

// AuthorizeTransaction commits a pending transaction's effect to the account
// balance and the ledger, transitioning it to AUTHORIZED.
//
// The balance delta, the journal entry, and the status transition are one
// unit of work at the repository: either all three durable writes commit, or
// none do. Concurrent authorize calls for the same transaction serialize on
// the repository's status compare-and-set, so exactly one caller wins and the
// loser observes ErrInvalidState with no duplicate balance application.
//
// A withdrawal may drive the balance negative; there is no overdraft check.
func (s *transactionService) AuthorizeTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch transaction for authorization", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s, expected PENDING", apperrors.ErrInvalidState, transactionID, txn.Status)
	}
	if txn.Amount <= 0 {
		return nil, fmt.Errorf("%w: transaction %s has non-positive amount %d", apperrors.ErrValidation, transactionID, txn.Amount)
	}

	now := time.Now().UTC()
	delta := txn.BalanceDelta()

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		AccountID:   txn.AccountID,
		Description: entryDescription(*txn),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if txn.Type == domain.Withdrawal {
		entry.Credit = txn.Amount
	} else {
		entry.Debit = txn.Amount
	}

	if err := s.txnRepo.AuthorizeTransaction(ctx, *txn, entry, delta, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// A concurrent caller won the compare-and-set.
			logger.Warn("Lost authorization race", slog.String("transaction_id", transactionID))
			return nil, fmt.Errorf("%w: transaction %s already left PENDING", apperrors.ErrInvalidState, transactionID)
		}
		logger.Error("Failed to authorize transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to authorize transaction %s: %w", transactionID, err)
	}

	txn.Status = domain.Authorized
	txn.UpdatedAt = now

	logger.Info("Transaction authorized",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int64("balance_delta", delta),
		slog.String("entry_id", entry.EntryID),
	)
	return txn, nil
}

// RejectTransaction transitions a pending transaction to REJECTED. No balance
// or ledger effect.
func (s *transactionService) RejectTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch transaction for rejection", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s, expected PENDING", apperrors.ErrInvalidState, transactionID, txn.Status)
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.Pending, domain.Rejected, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Lost rejection race", slog.String("transaction_id", transactionID))
			return nil, fmt.Errorf("%w: transaction %s already left PENDING", apperrors.ErrInvalidState, transactionID)
		}
		logger.Error("Failed to reject transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to reject transaction %s: %w", transactionID, err)
	}

	txn.Status = domain.Rejected
	txn.UpdatedAt = now

	logger.Info("Transaction rejected", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return txn, nil
}

// GetTransactionStats folds all of the account's transactions into summary
// totals. Only AUTHORIZED transactions count toward the monetary totals;
// TotalTransactions counts every transaction for the account.
func (s *transactionService) GetTransactionStats(ctx context.Context, accountID string) (*domain.Stats, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	txns, err := s.txnRepo.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}

	stats := domain.Stats{TotalTransactions: len(txns)}
	for _, txn := range txns {
		if txn.Status != domain.Authorized {
			continue
		}
		switch txn.Type {
		case domain.Deposit:
			stats.TotalDeposits += txn.Amount
		case domain.Withdrawal:
			stats.TotalWithdrawals += txn.Amount
		}
	}
	stats.NetAmount = stats.TotalDeposits - stats.TotalWithdrawals

	return &stats, nil
}

// ListTransactionsByAccount retrieves a paginated list of transactions for an account.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions by account from repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
