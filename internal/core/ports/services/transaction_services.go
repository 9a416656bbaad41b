package services

import (
	"context"

	"github.com/corebank/ledger/internal/core/domain"
	"github.com/corebank/ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionStats folds the account's authorized transactions into
	// deposit/withdrawal/net totals.
	GetTransactionStats(ctx context.Context, accountID string) (*domain.Stats, error)

	// ListTransactionsByAccount retrieves a paginated list of transactions for an account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines operations that drive the transaction state machine
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction in the PENDING state.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// AuthorizeTransaction commits a pending transaction's effect to the
	// account balance and the ledger, transitioning it to AUTHORIZED. The
	// three durable writes (balance, journal entry, status) are exactly-once:
	// either all commit or none do.
	AuthorizeTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// RejectTransaction transitions a pending transaction to REJECTED with no
	// balance or ledger effect.
	RejectTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
