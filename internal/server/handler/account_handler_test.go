package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/money"
	"github.com/money-transfers-service/internal/domain/transaction"
	"github.com/money-transfers-service/internal/service"
)

type MockAccountService struct {
	mock.Mock
}

var _ service.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) OpenAccount(ctx context.Context, holder account.Holder, currency string, openedAt time.Time) (account.Account, error) {
	args := m.Called(ctx, holder, currency, openedAt)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountService) CloseAccount(ctx context.Context, number string) (account.Account, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountService) GetDetails(ctx context.Context, number string) (account.Account, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountService) Balance(ctx context.Context, number string) (money.Money, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(money.Money), args.Error(1)
}

func (m *MockAccountService) Deposit(ctx context.Context, number string, amount money.Money) (account.Account, error) {
	args := m.Called(ctx, number, amount)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountService) Withdraw(ctx context.Context, number string, amount money.Money) (account.Account, error) {
	args := m.Called(ctx, number, amount)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountService) Transfer(ctx context.Context, req service.TransferRequest) (transaction.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(transaction.Transaction), args.Error(1)
}

func (m *MockAccountService) GetTransaction(ctx context.Context, id string) (transaction.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(transaction.Transaction), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var topLevel Response
	require.NoError(t, json.Unmarshal(body, &topLevel), "failed to unmarshal envelope")
	require.NotNil(t, topLevel.Data, "'data' field should not be nil")

	dataBytes, err := json.Marshal(topLevel.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(dataBytes, &out))
	return out
}

func decodeError(t *testing.T, body []byte) *ErrorInfo {
	t.Helper()
	var topLevel Response
	require.NoError(t, json.Unmarshal(body, &topLevel))
	require.NotNil(t, topLevel.Error, "'error' field should not be nil")
	return topLevel.Error
}

func sampleAccount(number string) account.Account {
	openedAt := time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)
	return account.Account{
		Number:   number,
		Holder:   account.Holder{FullName: "John Doe", Address: "1 Main St"},
		OpenedAt: openedAt,
		Balance:  money.MustParse("100.00", "USD"),
	}
}

func TestAccountHandler_Open(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		expected := sampleAccount("BE68539007547034")
		mockService.On("OpenAccount", mock.Anything, expected.Holder, "USD", mock.AnythingOfType("time.Time")).
			Return(expected, nil)

		router := setupTestRouter()
		router.POST("/accounts", handler.Open)

		reqBody := OpenAccountRequest{
			Holder:   HolderPayload{FullName: "John Doe", Address: "1 Main St"},
			Currency: "USD",
		}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeData[AccountResponse](t, rr.Body.Bytes())
		assert.Equal(t, expected.Number, resp.Number)
		assert.Equal(t, "John Doe", resp.Holder.FullName)
		assert.True(t, resp.Balance.Equal(expected.Balance))
		assert.Empty(t, resp.ClosedAt)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/accounts", handler.Open)

		req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(`{"invalid`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "OpenAccount")
	})

	t.Run("MissingHolderName", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/accounts", handler.Open)

		body := `{"holder":{"address":"1 Main St"},"currency":"USD"}`
		req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "OpenAccount")
	})
}

func TestAccountHandler_Show(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		expected := sampleAccount("BE68539007547034")
		mockService.On("GetDetails", mock.Anything, "BE68539007547034").Return(expected, nil)

		router := setupTestRouter()
		router.GET("/accounts/:number", handler.Show)

		req, _ := http.NewRequest(http.MethodGet, "/accounts/BE68539007547034", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[AccountResponse](t, rr.Body.Bytes())
		assert.Equal(t, expected.Number, resp.Number)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("GetDetails", mock.Anything, "BE00000000000000").
			Return(account.Account{}, account.NoSuchAccountError{Number: "BE00000000000000"})

		router := setupTestRouter()
		router.GET("/accounts/:number", handler.Show)

		req, _ := http.NewRequest(http.MethodGet, "/accounts/BE00000000000000", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		errDetails := decodeError(t, rr.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", errDetails.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_Balance(t *testing.T) {
	logger := testLogger()
	mockService := new(MockAccountService)
	handler := NewAccountHandler(logger, mockService)

	mockService.On("Balance", mock.Anything, "BE68539007547034").
		Return(money.MustParse("70.00", "USD"), nil)

	router := setupTestRouter()
	router.GET("/accounts/:number/balance", handler.Balance)

	req, _ := http.NewRequest(http.MethodGet, "/accounts/BE68539007547034/balance", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeData[BalanceResponse](t, rr.Body.Bytes())
	assert.True(t, resp.Balance.Equal(money.MustParse("70.00", "USD")))
	mockService.AssertExpectations(t)
}

func TestAccountHandler_Deposit(t *testing.T) {
	logger := testLogger()

	postAmount := func(t *testing.T, handler *AccountHandler, amount string) *httptest.ResponseRecorder {
		t.Helper()
		router := setupTestRouter()
		router.POST("/accounts/:number/deposit", handler.Deposit)

		body := `{"amount":{"amount":"` + amount + `","currency":"USD"}}`
		req, _ := http.NewRequest(http.MethodPost, "/accounts/BE68539007547034/deposit", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		updated := sampleAccount("BE68539007547034")
		mockService.On("Deposit", mock.Anything, "BE68539007547034", money.MustParse("20.00", "USD")).
			Return(updated, nil)

		rr := postAmount(t, handler, "20.00")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("Deposit", mock.Anything, "BE68539007547034", money.MustParse("-1.00", "USD")).
			Return(account.Account{}, account.ErrNegativeAmount)

		rr := postAmount(t, handler, "-1.00")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errDetails := decodeError(t, rr.Body.Bytes())
		assert.Equal(t, "NEGATIVE_AMOUNT", errDetails.Code)
	})

	t.Run("DifferentCurrency", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("Deposit", mock.Anything, "BE68539007547034", money.MustParse("1.00", "USD")).
			Return(account.Account{}, account.DifferentCurrencyError{Number: "BE68539007547034"})

		rr := postAmount(t, handler, "1.00")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errDetails := decodeError(t, rr.Body.Bytes())
		assert.Equal(t, "DIFFERENT_CURRENCY", errDetails.Code)
	})
}

func TestAccountHandler_Withdraw(t *testing.T) {
	logger := testLogger()

	t.Run("InsufficientFunds", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("Withdraw", mock.Anything, "BE68539007547034", money.MustParse("500.00", "USD")).
			Return(account.Account{}, account.InsufficientFundsError{Number: "BE68539007547034"})

		router := setupTestRouter()
		router.POST("/accounts/:number/withdraw", handler.Withdraw)

		body := `{"amount":{"amount":"500.00","currency":"USD"}}`
		req, _ := http.NewRequest(http.MethodPost, "/accounts/BE68539007547034/withdraw", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errDetails := decodeError(t, rr.Body.Bytes())
		assert.Equal(t, "INSUFFICIENT_FUNDS", errDetails.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_Close(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		closed := sampleAccount("BE68539007547034")
		closedAt := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
		closed.ClosedAt = &closedAt
		mockService.On("CloseAccount", mock.Anything, "BE68539007547034").Return(closed, nil)

		router := setupTestRouter()
		router.POST("/accounts/:number/close", handler.Close)

		req, _ := http.NewRequest(http.MethodPost, "/accounts/BE68539007547034/close", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[AccountResponse](t, rr.Body.Bytes())
		assert.Equal(t, closedAt.Format(time.RFC3339), resp.ClosedAt)
		mockService.AssertExpectations(t)
	})

	t.Run("AlreadyClosed", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("CloseAccount", mock.Anything, "BE68539007547034").
			Return(account.Account{}, account.ClosedError{Number: "BE68539007547034"})

		router := setupTestRouter()
		router.POST("/accounts/:number/close", handler.Close)

		req, _ := http.NewRequest(http.MethodPost, "/accounts/BE68539007547034/close", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errDetails := decodeError(t, rr.Body.Bytes())
		assert.Equal(t, "ACCOUNT_CLOSED", errDetails.Code)
	})
}
