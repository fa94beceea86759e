// Package idgen provides the identifier generators for accounts and
// transactions. Uniqueness is "unique enough": the account service still
// verifies account numbers against the store and regenerates on collision.
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AccountNumberGenerator produces candidate account numbers.
type AccountNumberGenerator interface {
	Generate() (string, error)
}

// TransactionIDGenerator produces transaction ids.
type TransactionIDGenerator interface {
	Generate() string
}

var ErrInvalidCountryCode = errors.New("country code must be 2 uppercase letters")

// bbanDigits is the length of the randomly drawn basic account number part.
// Together with the country code and check digits this yields the 16-char
// Belgian IBAN layout.
const bbanDigits = 12

// IBANGenerator generates random account numbers in IBAN format with valid
// mod-97 check digits.
type IBANGenerator struct {
	country string
}

// NewIBANGenerator creates a generator for the given ISO-3166 country code.
func NewIBANGenerator(country string) (*IBANGenerator, error) {
	if len(country) != 2 {
		return nil, ErrInvalidCountryCode
	}
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return nil, ErrInvalidCountryCode
		}
	}
	return &IBANGenerator{country: country}, nil
}

// Generate draws a random basic account number and prefixes it with the
// country code and computed check digits.
func (g *IBANGenerator) Generate() (string, error) {
	buf := make([]byte, bbanDigits)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("drawing account number: %w", err)
	}
	bban := make([]byte, bbanDigits)
	for i, b := range buf {
		bban[i] = '0' + b%10
	}
	check := checkDigits(g.country, string(bban))
	return fmt.Sprintf("%s%02d%s", g.country, check, bban), nil
}

// checkDigits computes the ISO-13616 mod-97 check digits: the BBAN followed
// by the country code and "00" is read as a number with letters mapped to
// 10..35, and the digits are 98 minus its remainder mod 97.
func checkDigits(country, bban string) int {
	rem := 0
	for _, r := range bban + country + "00" {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		default:
			rem = (rem*100 + int(r-'A') + 10) % 97
		}
	}
	return 98 - rem
}

// UUIDGenerator generates transaction ids as random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
