package service

import (
	"context"
	"time"

	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/money"
	"github.com/money-transfers-service/internal/domain/transaction"
)

// AccountService is the operation set exposed to the transport layer. Every
// call returns either a success value or exactly one tagged error; expected
// business conditions never surface as panics or untyped failures.
type AccountService interface {
	OpenAccount(ctx context.Context, holder account.Holder, currency string, openedAt time.Time) (account.Account, error)
	CloseAccount(ctx context.Context, number string) (account.Account, error)
	GetDetails(ctx context.Context, number string) (account.Account, error)
	Balance(ctx context.Context, number string) (money.Money, error)
	Deposit(ctx context.Context, number string, amount money.Money) (account.Account, error)
	Withdraw(ctx context.Context, number string, amount money.Money) (account.Account, error)
	Transfer(ctx context.Context, req TransferRequest) (transaction.Transaction, error)
	GetTransaction(ctx context.Context, id string) (transaction.Transaction, error)
}

// TransferRequest describes a transfer between two accounts. The same
// amount value is applied to both legs; no conversion or rounding occurs.
type TransferRequest struct {
	From    string
	To      string
	Amount  money.Money
	Message string
}

// RepositoryError wraps an unexpected storage failure. It is never produced
// for business rejections or missing records.
type RepositoryError struct {
	Err error
}

func (e *RepositoryError) Error() string {
	return "repository error: " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() error { return e.Err }
