package account

import "errors"

// Common errors
var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrEmptyHolderName = errors.New("holder full name cannot be empty")
)

// NoSuchAccountError indicates the referenced account does not exist.
type NoSuchAccountError struct {
	Number string
}

func (e NoSuchAccountError) Error() string {
	return "no such account: " + e.Number
}

// DifferentCurrencyError indicates the operation amount is not in the
// account's currency.
type DifferentCurrencyError struct {
	Number string
}

func (e DifferentCurrencyError) Error() string {
	return "different currency for account: " + e.Number
}

// InsufficientFundsError indicates the account balance does not cover the
// requested debit.
type InsufficientFundsError struct {
	Number string
}

func (e InsufficientFundsError) Error() string {
	return "insufficient funds on account: " + e.Number
}

// ClosedError indicates an operation on an account that has been closed.
type ClosedError struct {
	Number string
}

func (e ClosedError) Error() string {
	return "account is closed: " + e.Number
}

// DuplicateNumberError indicates an account number collision at creation.
type DuplicateNumberError struct {
	Number string
}

func (e DuplicateNumberError) Error() string {
	return "account number already taken: " + e.Number
}
