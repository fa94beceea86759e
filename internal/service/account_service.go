package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"time"

	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/money"
	"github.com/money-transfers-service/internal/domain/transaction"
	"github.com/money-transfers-service/internal/platform/clock"
	"github.com/money-transfers-service/internal/platform/idgen"
	"github.com/money-transfers-service/internal/store"
)

// accountServiceImpl translates banking operations into store transform
// requests. It owns no mutable state of its own: account values live in the
// store and are only read through the pure rule functions handed to it.
type accountServiceImpl struct {
	accounts          *store.Store[account.Account]
	transactions      *store.Store[transaction.Transaction]
	numbers           idgen.AccountNumberGenerator
	transactionIDs    idgen.TransactionIDGenerator
	clock             clock.Clock
	logger            *slog.Logger
	maxNumberAttempts int
}

// NewAccountService creates the account service with its collaborators.
// maxNumberAttempts bounds the account-number uniqueness retry at open time.
func NewAccountService(
	logger *slog.Logger,
	accounts *store.Store[account.Account],
	transactions *store.Store[transaction.Transaction],
	numbers idgen.AccountNumberGenerator,
	transactionIDs idgen.TransactionIDGenerator,
	clk clock.Clock,
	maxNumberAttempts int,
) AccountService {
	return &accountServiceImpl{
		accounts:          accounts,
		transactions:      transactions,
		numbers:           numbers,
		transactionIDs:    transactionIDs,
		clock:             clk,
		logger:            logger,
		maxNumberAttempts: maxNumberAttempts,
	}
}

// OpenAccount obtains a fresh unique account number, builds an account with
// a zero balance in the given currency and inserts it into the store.
func (s *accountServiceImpl) OpenAccount(ctx context.Context, holder account.Holder, currency string, openedAt time.Time) (account.Account, error) {
	number, err := s.uniqueAccountNumber()
	if err != nil {
		return account.Account{}, err
	}

	acc, err := account.Open(number, holder, currency, openedAt)
	if err != nil {
		return account.Account{}, err
	}

	created, err := s.accounts.Create(number, acc)
	if err != nil {
		var dup store.DuplicateIDError
		if errors.As(err, &dup) {
			// Reachable only if another writer claimed the number between
			// the Exists check and the insert.
			return account.Account{}, account.DuplicateNumberError{Number: number}
		}
		return account.Account{}, &RepositoryError{Err: err}
	}

	s.logger.Info("account opened", "number", created.Number, "currency", currency)
	return created, nil
}

// uniqueAccountNumber generates candidates until one is not present in the
// store, giving up after the configured number of attempts.
func (s *accountServiceImpl) uniqueAccountNumber() (string, error) {
	for attempt := 0; attempt < s.maxNumberAttempts; attempt++ {
		number, err := s.numbers.Generate()
		if err != nil {
			return "", &RepositoryError{Err: err}
		}
		if !s.accounts.Exists(number) {
			return number, nil
		}
		s.logger.Warn("account number collision, regenerating", "number", number)
	}
	return "", &RepositoryError{Err: fmt.Errorf("no unique account number after %d attempts", s.maxNumberAttempts)}
}

// debit builds the pure rule applied to the debited account. Safe to invoke
// repeatedly on retries; it never mutates its input.
func debit(amount money.Money) func(account.Account) (account.Account, error) {
	return func(a account.Account) (account.Account, error) {
		if amount.IsNegative() {
			return account.Account{}, account.ErrNegativeAmount
		}
		if a.IsClosed() {
			return account.Account{}, account.ClosedError{Number: a.Number}
		}
		if a.Currency() != amount.Currency() {
			return account.Account{}, account.DifferentCurrencyError{Number: a.Number}
		}
		short, err := a.Balance.LessThan(amount)
		if err != nil {
			return account.Account{}, err
		}
		if short {
			return account.Account{}, account.InsufficientFundsError{Number: a.Number}
		}
		balance, err := a.Balance.Sub(amount)
		if err != nil {
			return account.Account{}, err
		}
		a.Balance = balance
		return a, nil
	}
}

// credit builds the pure rule applied to the credited account. Same checks
// as debit except sufficiency of funds.
func credit(amount money.Money) func(account.Account) (account.Account, error) {
	return func(a account.Account) (account.Account, error) {
		if amount.IsNegative() {
			return account.Account{}, account.ErrNegativeAmount
		}
		if a.IsClosed() {
			return account.Account{}, account.ClosedError{Number: a.Number}
		}
		if a.Currency() != amount.Currency() {
			return account.Account{}, account.DifferentCurrencyError{Number: a.Number}
		}
		balance, err := a.Balance.Add(amount)
		if err != nil {
			return account.Account{}, err
		}
		a.Balance = balance
		return a, nil
	}
}

// Withdraw debits the account by the given amount.
func (s *accountServiceImpl) Withdraw(ctx context.Context, number string, amount money.Money) (account.Account, error) {
	updated, err := s.accounts.TransformOne(number, debit(amount))
	if err != nil {
		return account.Account{}, mapAccountStoreError(number, err)
	}
	return updated, nil
}

// Deposit credits the account by the given amount.
func (s *accountServiceImpl) Deposit(ctx context.Context, number string, amount money.Money) (account.Account, error) {
	updated, err := s.accounts.TransformOne(number, credit(amount))
	if err != nil {
		return account.Account{}, mapAccountStoreError(number, err)
	}
	return updated, nil
}

// Transfer atomically debits the source and credits the destination, then
// records the committed transfer in the transaction log. Both accounts must
// hold the amount's currency; no observer ever sees one leg applied without
// the other.
func (s *accountServiceImpl) Transfer(ctx context.Context, req TransferRequest) (transaction.Transaction, error) {
	if req.Amount.IsNegative() {
		return transaction.Transaction{}, account.ErrNegativeAmount
	}

	updates := []store.Update[account.Account]{
		{ID: req.From, Apply: debit(req.Amount)},
		{ID: req.To, Apply: credit(req.Amount)},
	}
	if _, err := s.accounts.TransformBatch(updates); err != nil {
		var notFound store.NotFoundError
		if errors.As(err, &notFound) {
			return transaction.Transaction{}, account.NoSuchAccountError{Number: notFound.ID}
		}
		return transaction.Transaction{}, err
	}

	tx := transaction.Transaction{
		ID:        s.transactionIDs.Generate(),
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Timestamp: s.clock.Now(),
		Message:   req.Message,
	}
	if _, err := s.transactions.Create(tx.ID, tx); err != nil {
		// The transfer itself has committed; a duplicate transaction id
		// here is an infrastructure fault, not a business rejection.
		return transaction.Transaction{}, &RepositoryError{Err: err}
	}

	s.logger.Info("transfer committed",
		"transaction_id", tx.ID,
		"from", tx.From,
		"to", tx.To,
		"amount", tx.Amount.String(),
	)
	return tx, nil
}

// CloseAccount marks the account closed. Closed accounts keep their record
// and reject further debits and credits.
func (s *accountServiceImpl) CloseAccount(ctx context.Context, number string) (account.Account, error) {
	closedAt := s.clock.Now()
	updated, err := s.accounts.TransformOne(number, func(a account.Account) (account.Account, error) {
		if a.IsClosed() {
			return account.Account{}, account.ClosedError{Number: a.Number}
		}
		a.ClosedAt = &closedAt
		return a, nil
	})
	if err != nil {
		return account.Account{}, mapAccountStoreError(number, err)
	}
	s.logger.Info("account closed", "number", number)
	return updated, nil
}

// GetDetails returns the current account state.
func (s *accountServiceImpl) GetDetails(ctx context.Context, number string) (account.Account, error) {
	acc, err := s.accounts.Query(number)
	if err != nil {
		return account.Account{}, mapAccountStoreError(number, err)
	}
	return acc, nil
}

// Balance returns the current account balance.
func (s *accountServiceImpl) Balance(ctx context.Context, number string) (money.Money, error) {
	acc, err := s.GetDetails(ctx, number)
	if err != nil {
		return money.Money{}, err
	}
	return acc.Balance, nil
}

// GetTransaction looks up a recorded transfer by its id.
func (s *accountServiceImpl) GetTransaction(ctx context.Context, id string) (transaction.Transaction, error) {
	tx, err := s.transactions.Query(id)
	if err != nil {
		var notFound store.NotFoundError
		if errors.As(err, &notFound) {
			return transaction.Transaction{}, transaction.NotFoundError{ID: id}
		}
		return transaction.Transaction{}, &RepositoryError{Err: err}
	}
	return tx, nil
}

// mapAccountStoreError unwraps the store's layered error: a missing id
// becomes NoSuchAccountError, business errors pass through unchanged.
func mapAccountStoreError(number string, err error) error {
	var notFound store.NotFoundError
	if errors.As(err, &notFound) {
		return account.NoSuchAccountError{Number: number}
	}
	return err
}
