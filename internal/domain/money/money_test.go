package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m, err := New(decimal.NewFromInt(100), "USD")

		require.NoError(t, err)
		assert.Equal(t, "USD", m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("InvalidCurrency", func(t *testing.T) {
		for _, code := range []string{"", "US", "usd", "USDX", "U5D"} {
			_, err := New(decimal.Zero, code)
			assert.ErrorIs(t, err, ErrInvalidCurrencyFormat, "code %q", code)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m, err := Parse("30.00", "USD")

		require.NoError(t, err)
		assert.Equal(t, "30 USD", m.String())
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		_, err := Parse("thirty", "USD")
		assert.ErrorIs(t, err, ErrInvalidAmountFormat)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		sum, err := MustParse("70.00", "USD").Add(MustParse("30.00", "USD"))

		require.NoError(t, err)
		assert.True(t, sum.Equal(MustParse("100.00", "USD")))
	})

	t.Run("Sub", func(t *testing.T) {
		diff, err := MustParse("100.00", "USD").Sub(MustParse("30.00", "USD"))

		require.NoError(t, err)
		assert.True(t, diff.Equal(MustParse("70.00", "USD")))
	})

	t.Run("ExactDecimalArithmetic", func(t *testing.T) {
		// 0.1 + 0.2 must be exactly 0.3, not a float approximation.
		sum, err := MustParse("0.1", "USD").Add(MustParse("0.2", "USD"))

		require.NoError(t, err)
		assert.True(t, sum.Equal(MustParse("0.3", "USD")))
	})

	t.Run("CurrencyMismatch", func(t *testing.T) {
		usd := MustParse("10.00", "USD")
		eur := MustParse("10.00", "EUR")

		_, err := usd.Add(eur)
		var mismatch CurrencyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "USD", mismatch.Left)
		assert.Equal(t, "EUR", mismatch.Right)

		_, err = usd.Sub(eur)
		assert.ErrorAs(t, err, &mismatch)

		_, err = usd.LessThan(eur)
		assert.ErrorAs(t, err, &mismatch)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	t.Run("LessThan", func(t *testing.T) {
		less, err := MustParse("10.00", "USD").LessThan(MustParse("10.01", "USD"))
		require.NoError(t, err)
		assert.True(t, less)

		less, err = MustParse("10.00", "USD").LessThan(MustParse("10.00", "USD"))
		require.NoError(t, err)
		assert.False(t, less)
	})

	t.Run("IsNegative", func(t *testing.T) {
		assert.True(t, MustParse("-0.01", "USD").IsNegative())
		assert.False(t, MustParse("0", "USD").IsNegative())
		assert.False(t, MustParse("0.01", "USD").IsNegative())
	})

	t.Run("EqualAcrossCurrencies", func(t *testing.T) {
		assert.False(t, MustParse("10.00", "USD").Equal(MustParse("10.00", "EUR")))
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		out, err := json.Marshal(MustParse("30.00", "USD"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"30","currency":"USD"}`, string(out))

		var back Money
		require.NoError(t, json.Unmarshal(out, &back))
		assert.True(t, back.Equal(MustParse("30.00", "USD")))
	})

	t.Run("RejectsInvalidPayload", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`{"amount":"x","currency":"USD"}`), &m))
		assert.Error(t, json.Unmarshal([]byte(`{"amount":"1.00","currency":"dollars"}`), &m))
	})
}
