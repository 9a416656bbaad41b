package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corebank/ledger/internal/apperrors"
	"github.com/corebank/ledger/internal/core/domain"
	portssvc "github.com/corebank/ledger/internal/core/ports/services"
	"github.com/corebank/ledger/internal/dto"
	"github.com/corebank/ledger/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) AuthorizeTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) RejectTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionStats(ctx context.Context, accountID string) (*domain.Stats, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockService = new(MockTransactionService)

	handler := handlers.NewTransactionHandler(suite.mockService)
	v1 := suite.router.Group("/api/v1")
	v1.POST("/transactions", handler.CreateTransaction)
	v1.GET("/transactions/:transactionID", handler.GetTransaction)
	v1.POST("/transactions/:transactionID/authorize", handler.AuthorizeTransaction)
	v1.POST("/transactions/:transactionID/reject", handler.RejectTransaction)
	v1.GET("/accounts/:accountID/stats", handler.GetTransactionStats)
	v1.GET("/accounts/:accountID/transactions", handler.ListTransactionsByAccount)
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	accountID := uuid.NewString()
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Type:          domain.Deposit,
		Status:        domain.Pending,
		Amount:        2500,
	}

	suite.mockService.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.AccountID == accountID && r.Type == domain.Deposit && r.Amount == 2500
	})).Return(expected, nil).Once()

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		AccountID: accountID,
		Type:      domain.Deposit,
		Amount:    2500,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal("PENDING", resp.Status)
	suite.Equal(int64(2500), resp.Amount)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MalformedBody() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString(`{"amount": -5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestAuthorizeTransaction_Success() {
	txnID := uuid.NewString()
	expected := &domain.Transaction{
		TransactionID: txnID,
		AccountID:     uuid.NewString(),
		Type:          domain.Withdrawal,
		Status:        domain.Authorized,
		Amount:        700,
	}

	suite.mockService.On("AuthorizeTransaction", mock.Anything, txnID).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/authorize", txnID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("AUTHORIZED", resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestAuthorizeTransaction_NotPending() {
	txnID := uuid.NewString()

	suite.mockService.On("AuthorizeTransaction", mock.Anything, txnID).
		Return(nil, fmt.Errorf("%w: transaction %s is AUTHORIZED, expected PENDING", apperrors.ErrInvalidState, txnID)).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/authorize", txnID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestAuthorizeTransaction_NotFound() {
	txnID := uuid.NewString()

	suite.mockService.On("AuthorizeTransaction", mock.Anything, txnID).
		Return(nil, fmt.Errorf("failed to find transaction %s: %w", txnID, apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/authorize", txnID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestRejectTransaction_Success() {
	txnID := uuid.NewString()
	expected := &domain.Transaction{
		TransactionID: txnID,
		AccountID:     uuid.NewString(),
		Type:          domain.Deposit,
		Status:        domain.Rejected,
		Amount:        100,
	}

	suite.mockService.On("RejectTransaction", mock.Anything, txnID).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/reject", txnID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("REJECTED", resp.Status)
}

func (suite *TransactionHandlerTestSuite) TestGetTransactionStats_Success() {
	accountID := uuid.NewString()
	stats := &domain.Stats{
		TotalDeposits:     5000,
		TotalWithdrawals:  1200,
		NetAmount:         3800,
		TotalTransactions: 7,
	}

	suite.mockService.On("GetTransactionStats", mock.Anything, accountID).Return(stats, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/stats", accountID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.StatsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(3800), resp.NetAmount)
	suite.Equal(7, resp.TotalTransactions)
}

func (suite *TransactionHandlerTestSuite) TestListTransactionsByAccount_Success() {
	accountID := uuid.NewString()
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), AccountID: accountID, Type: "DEPOSIT", Status: "PENDING", Amount: 100},
		},
	}

	suite.mockService.On("ListTransactionsByAccount", mock.Anything, accountID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 10
	})).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=10", accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
