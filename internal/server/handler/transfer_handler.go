package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/transaction"
	"github.com/money-transfers-service/internal/service"
)

// TransferHandler handles HTTP requests for transfers and their records
type TransferHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, accountService service.AccountService) *TransferHandler {
	return &TransferHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create executes a transfer between two accounts and returns the recorded
// transaction.
func (h *TransferHandler) Create(c *gin.Context) {
	var req TransferPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.accountService.Transfer(c.Request.Context(), service.TransferRequest{
		From:    req.From,
		To:      req.To,
		Amount:  req.Amount,
		Message: req.Message,
	})
	if err != nil {
		h.respondTransferError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// GetByID retrieves a recorded transaction by its id
func (h *TransferHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	tx, err := h.accountService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		var notFound transaction.NotFoundError
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transaction "+id+" not found")
			return
		}
		h.logger.Error("transaction lookup failed", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// respondTransferError maps transfer rejections onto HTTP statuses. A
// missing account on either leg is a 400 here, not a 404: the resource
// addressed by the request is the transfer, not an account.
func (h *TransferHandler) respondTransferError(c *gin.Context, err error) {
	var (
		noSuchAccount     account.NoSuchAccountError
		differentCurrency account.DifferentCurrencyError
		insufficientFunds account.InsufficientFundsError
		closed            account.ClosedError
	)
	switch {
	case errors.Is(err, account.ErrNegativeAmount):
		RespondBadRequest(c, "NEGATIVE_AMOUNT", "Cannot transfer negative amounts")
	case errors.As(err, &noSuchAccount):
		RespondBadRequest(c, "NO_SUCH_ACCOUNT", "Account "+noSuchAccount.Number+" not found")
	case errors.As(err, &differentCurrency):
		RespondBadRequest(c, "DIFFERENT_CURRENCY", "Currency mismatch for account "+differentCurrency.Number)
	case errors.As(err, &insufficientFunds):
		RespondBadRequest(c, "INSUFFICIENT_FUNDS", "Insufficient funds on account "+insufficientFunds.Number)
	case errors.As(err, &closed):
		RespondBadRequest(c, "ACCOUNT_CLOSED", "Account "+closed.Number+" is closed")
	default:
		h.logger.Error("transfer failed", "error", err)
		RespondInternalError(c)
	}
}
