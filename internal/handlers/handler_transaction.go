package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/SscSPs/familienkasse/internal/dto"
	"github.com/SscSPs/familienkasse/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

const transactionNotFoundMsg = "Transaction not found"

// transactionHandler handles HTTP requests for the transactions of one account.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers the routes below /accounts/:accountID/transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	rg.GET("", h.listTransactions)
	rg.POST("", h.createTransaction)
	rg.GET("/:transactionID", h.getTransaction)
	rg.PATCH("/:transactionID", h.updateTransaction)
	rg.DELETE("/:transactionID", h.deleteTransaction)
}

// listTransactions godoc
// @Summary List transactions of an account
// @Description Lists the account's transactions newest first, with the total count
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size (default 50, max 100)"
// @Param   offset query int false "Number of transactions to skip"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	limit, offset := pagination.Resolve(params.Limit, params.Offset)

	page, err := h.transactionService.ListTransactions(c.Request.Context(), c.Param("accountID"), userID, limit, offset)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(page))
}

// createTransaction godoc
// @Summary Book a transaction
// @Description Books a signed cent amount against the account. Positive amounts are credits.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, accountNotFoundMsg)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Transaction not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("accountID"), c.Param("transactionID"), userID)
	if err != nil {
		respondError(c, err, transactionNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates description, amount or paid flag. Omitted fields stay unchanged; createdAt never changes.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Transaction not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("accountID"), c.Param("transactionID"), req, userID)
	if err != nil {
		respondError(c, err, transactionNotFoundMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   accountID path string true "Account ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Transaction not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("accountID"), c.Param("transactionID"), userID); err != nil {
		respondError(c, err, transactionNotFoundMsg)
		return
	}
	c.Status(http.StatusNoContent)
}
