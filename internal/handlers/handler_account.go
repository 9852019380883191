package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/gin-gonic/gin"
)

const accountNotFoundMsg = "Account not found"

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts and their transactions.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.PUT("/:accountID/allowance", h.updateAllowance)

		registerTransactionRoutes(accounts.Group("/:accountID/transactions"), transactionService)
	}
}

// listAccounts godoc
// @Summary List accounts for the logged-in user
// @Description Lists the user's accounts ordered by name, each with its balance and paid balance in cents
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountWithBalanceResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 500 {object} apperrors.AppError
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsWithBalances(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account for the logged-in user
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} apperrors.AppError "Invalid input format or validation error"
// @Failure 401 {object} apperrors.AppError
// @Failure 500 {object} apperrors.AppError
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves one of the user's accounts with its balances
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountWithBalanceResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Failure 500 {object} apperrors.AppError
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountWithBalance(c.Request.Context(), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountWithBalanceResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates the name and allowance settings of an account. Omitted fields stay unchanged.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Failure 500 {object} apperrors.AppError
// @Security BearerAuth
// @Router /accounts/{accountID} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAllowance godoc
// @Summary Configure the weekly allowance
// @Description Replaces both allowance settings of an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   allowance body dto.AllowanceConfigRequest true "Allowance settings"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/allowance [put]
func (h *accountHandler) updateAllowance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AllowanceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAllowanceConfig(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account together with all of its transactions
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Failure 500 {object} apperrors.AppError
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("accountID"), userID); err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.Status(http.StatusNoContent)
}
