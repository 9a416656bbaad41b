package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/corebank/ledger/internal/core/ports/services"
	"github.com/corebank/ledger/internal/dto"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests related to accounts.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// OpenAccount godoc
// @Summary Open a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Router /accounts [post]
func (h *AccountHandler) OpenAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// GetAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// ListAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// FreezeAccount godoc
// @Summary Freeze an active account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountID}/freeze [post]
func (h *AccountHandler) FreezeAccount(c *gin.Context) {
	account, err := h.accountService.FreezeAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// UnfreezeAccount godoc
// @Summary Unfreeze a frozen account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountID}/unfreeze [post]
func (h *AccountHandler) UnfreezeAccount(c *gin.Context) {
	account, err := h.accountService.UnfreezeAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// CloseAccount godoc
// @Summary Close an account
// @Description Refused while the account has pending transactions. Accounts are never deleted.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Pending transactions exist"
// @Router /accounts/{accountID}/close [post]
func (h *AccountHandler) CloseAccount(c *gin.Context) {
	account, err := h.accountService.CloseAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
