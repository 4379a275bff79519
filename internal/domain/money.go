package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits a Money value carries
const MoneyScale = 2

// ErrMoneyScale is returned when an amount has more fractional digits than MoneyScale
var ErrMoneyScale = errors.New("money amount must have at most 2 decimal places")

// Money represents an exact decimal amount with a two-digit scale
// The zero value is 0.00
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney parses a decimal literal such as "99000.50"
// Returns an error if the literal is malformed or has more than two decimal places
func NewMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", value, err)
	}
	return moneyFromDecimal(d)
}

// MustMoney is like NewMoney but panics on error. Intended for literals in code and tests.
func MustMoney(value string) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromInt creates a Money value from a whole amount
func MoneyFromInt(value int64) Money {
	return Money{amount: decimal.NewFromInt(value)}
}

// MoneyFromDecimal wraps an existing decimal, rejecting values finer than MoneyScale
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	return moneyFromDecimal(d)
}

func moneyFromDecimal(d decimal.Decimal) (Money, error) {
	// Rounding would hide precision loss, so anything finer than cents is rejected
	if !d.Equal(d.Truncate(MoneyScale)) {
		return Money{}, fmt.Errorf("%s: %w", d.String(), ErrMoneyScale)
	}
	return Money{amount: d}, nil
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to or greater than other
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether both values represent the same amount (1.5 equals 1.50)
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsNegative reports whether m < 0
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Decimal exposes the underlying decimal value
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with exactly two decimal places
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// MarshalText implements encoding.TextMarshaler
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := NewMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
