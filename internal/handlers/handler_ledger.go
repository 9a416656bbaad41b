package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/corebank/ledger/internal/core/ports/services"
	"github.com/corebank/ledger/internal/dto"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles HTTP requests related to the journal.
type LedgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// PostToLedger godoc
// @Summary Post a journal entry
// @Description Appends a manual journal entry for an account. Entries are immutable once posted.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.PostEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid entry"
// @Router /ledger [post]
func (h *LedgerHandler) PostToLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostToLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	entry, err := h.ledgerService.PostToLedger(c.Request.Context(), req.AccountID, req.Debit, req.Credit, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// ListEntriesByAccount godoc
// @Summary List journal entries for an account
// @Tags ledger
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /accounts/{accountID}/ledger [get]
func (h *LedgerHandler) ListEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntriesByAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), c.Param("accountID"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CalculateAccountBalance godoc
// @Summary Recompute an account balance from its journal history
// @Tags ledger
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Router /accounts/{accountID}/ledger/balance [get]
func (h *LedgerHandler) CalculateAccountBalance(c *gin.Context) {
	accountID := c.Param("accountID")

	balance, err := h.ledgerService.CalculateAccountBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBalanceResponse(accountID, balance))
}

// ReconcileAccount godoc
// @Summary Compare the cached account balance against the journal
// @Tags ledger
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Router /accounts/{accountID}/ledger/reconciliation [get]
func (h *LedgerHandler) ReconcileAccount(c *gin.Context) {
	result, err := h.ledgerService.ReconcileAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}
