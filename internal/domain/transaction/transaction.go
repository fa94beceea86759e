// Package transaction holds the record written for every committed transfer.
package transaction

import (
	"time"

	"github.com/money-transfers-service/internal/domain/money"
)

// Transaction records a completed transfer between two accounts. Immutable
// once created; duplicate ids are rejected, never updated.
type Transaction struct {
	ID        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Amount    money.Money `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message,omitempty"`
}

// NotFoundError indicates the referenced transaction does not exist.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return "no such transaction: " + e.ID
}
