// Package account holds the account model and the business errors of the
// account operations.
package account

import (
	"time"

	"github.com/money-transfers-service/internal/domain/money"
)

// Holder identifies the person an account belongs to. Immutable after the
// account is opened.
type Holder struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
}

// Account is a bank account. The balance currency never changes after
// creation; accounts are closed, never deleted.
type Account struct {
	Number   string      `json:"number"`
	Holder   Holder      `json:"holder"`
	OpenedAt time.Time   `json:"opened_at"`
	ClosedAt *time.Time  `json:"closed_at,omitempty"`
	Balance  money.Money `json:"balance"`
}

// Open creates an account with a zero balance in the given currency.
func Open(number string, holder Holder, currency string, openedAt time.Time) (Account, error) {
	if holder.FullName == "" {
		return Account{}, ErrEmptyHolderName
	}
	balance, err := money.Zero(currency)
	if err != nil {
		return Account{}, err
	}
	return Account{
		Number:   number,
		Holder:   holder,
		OpenedAt: openedAt,
		Balance:  balance,
	}, nil
}

// Currency returns the currency the account is held in.
func (a Account) Currency() string { return a.Balance.Currency() }

// IsClosed reports whether the account has been closed.
func (a Account) IsClosed() bool { return a.ClosedAt != nil }
