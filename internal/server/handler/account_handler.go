package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/money"
	"github.com/money-transfers-service/internal/service"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Open handles opening a new account with a zero balance in the requested currency
func (h *AccountHandler) Open(c *gin.Context) {
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", "error", err)
		RespondBadRequest(c, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	holder := account.Holder{FullName: req.Holder.FullName, Address: req.Holder.Address}
	acc, err := h.accountService.OpenAccount(c.Request.Context(), holder, req.Currency, time.Now().UTC())
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// Show retrieves an account by its number, returning 404 if not found
func (h *AccountHandler) Show(c *gin.Context) {
	number := c.Param("number")

	acc, err := h.accountService.GetDetails(c.Request.Context(), number)
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Balance retrieves the current balance of an account
func (h *AccountHandler) Balance(c *gin.Context) {
	number := c.Param("number")

	balance, err := h.accountService.Balance(c.Request.Context(), number)
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondOK(c, BalanceResponse{Balance: balance})
}

// Deposit credits an account by the requested amount
func (h *AccountHandler) Deposit(c *gin.Context) {
	number := c.Param("number")

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.accountService.Deposit(c.Request.Context(), number, req.Amount)
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Withdraw debits an account by the requested amount
func (h *AccountHandler) Withdraw(c *gin.Context) {
	number := c.Param("number")

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.accountService.Withdraw(c.Request.Context(), number, req.Amount)
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Close marks an account as closed; its record is kept
func (h *AccountHandler) Close(c *gin.Context) {
	number := c.Param("number")

	acc, err := h.accountService.CloseAccount(c.Request.Context(), number)
	if err != nil {
		h.respondAccountError(c, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// respondAccountError maps service errors to HTTP status codes: missing
// accounts are 404, business rejections are 400 with a stable error code,
// anything else is a 500.
func (h *AccountHandler) respondAccountError(c *gin.Context, err error) {
	var (
		noSuchAccount     account.NoSuchAccountError
		differentCurrency account.DifferentCurrencyError
		insufficientFunds account.InsufficientFundsError
		closed            account.ClosedError
	)
	switch {
	case errors.As(err, &noSuchAccount):
		RespondNotFound(c, "Account "+noSuchAccount.Number+" not found")
	case errors.Is(err, account.ErrNegativeAmount):
		RespondBadRequest(c, "NEGATIVE_AMOUNT", "Amount must not be negative")
	case errors.As(err, &differentCurrency):
		RespondBadRequest(c, "DIFFERENT_CURRENCY", "Currency mismatch for account "+differentCurrency.Number)
	case errors.As(err, &insufficientFunds):
		RespondBadRequest(c, "INSUFFICIENT_FUNDS", "Insufficient funds on account "+insufficientFunds.Number)
	case errors.As(err, &closed):
		RespondBadRequest(c, "ACCOUNT_CLOSED", "Account "+closed.Number+" is closed")
	case errors.Is(err, account.ErrEmptyHolderName), errors.Is(err, money.ErrInvalidCurrencyFormat):
		RespondBadRequest(c, "BAD_REQUEST", err.Error())
	default:
		h.logger.Error("account operation failed", "error", err)
		RespondInternalError(c)
	}
}
