package handler

import (
	"time"

	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/money"
	"github.com/money-transfers-service/internal/domain/transaction"
)

// HolderPayload carries the account holder's identity.
type HolderPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address"`
}

// OpenAccountRequest represents a request to open a new account
type OpenAccountRequest struct {
	Holder   HolderPayload `json:"holder" binding:"required"`
	Currency string        `json:"currency" binding:"required,len=3"`
}

// AmountRequest carries the amount for a deposit or withdrawal.
type AmountRequest struct {
	Amount money.Money `json:"amount" binding:"required"`
}

// TransferPayload represents a transfer request between two accounts
type TransferPayload struct {
	From    string      `json:"from" binding:"required"`
	To      string      `json:"to" binding:"required"`
	Amount  money.Money `json:"amount" binding:"required"`
	Message string      `json:"message"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	Number   string        `json:"number"`
	Holder   HolderPayload `json:"holder"`
	OpenedAt string        `json:"opened_at"`
	ClosedAt string        `json:"closed_at,omitempty"`
	Balance  money.Money   `json:"balance"`
}

// BalanceResponse represents an account balance in API responses
type BalanceResponse struct {
	Balance money.Money `json:"balance"`
}

// TransactionResponse represents a recorded transfer in API responses
type TransactionResponse struct {
	ID        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Amount    money.Money `json:"amount"`
	Timestamp string      `json:"timestamp"`
	Message   string      `json:"message,omitempty"`
}

func mapAccountToResponse(acc account.Account) AccountResponse {
	resp := AccountResponse{
		Number: acc.Number,
		Holder: HolderPayload{
			FullName: acc.Holder.FullName,
			Address:  acc.Holder.Address,
		},
		OpenedAt: acc.OpenedAt.Format(time.RFC3339),
		Balance:  acc.Balance,
	}
	if acc.ClosedAt != nil {
		resp.ClosedAt = acc.ClosedAt.Format(time.RFC3339)
	}
	return resp
}

func mapTransactionToResponse(tx transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp.Format(time.RFC3339),
		Message:   tx.Message,
	}
}
