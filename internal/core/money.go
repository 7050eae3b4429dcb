// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer cents. Parsing goes through shopspring/decimal
// so that user input and stored JSON numbers never pass through a float.
package core

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the symbol appended to formatted amounts (Mozambican metical).
const DefaultCurrency = "MT"

type Money struct {
	Cents int64
}

var printer = message.NewPrinter(language.Portuguese)

// Cents builds a Money from a cents count.
func Cents(c int64) Money {
	return Money{Cents: c}
}

// ParseAmount converts a decimal string to cents with half-up rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Zero is a
// valid amount; signs, empty input and anything that is not a number are
// rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234
//	ParseAmount("12,345") -> 1235
//	ParseAmount("0")      -> 0
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsNegative() bool { return m.Cents < 0 }

func (m Money) GreaterThan(o Money) bool { return m.Cents > o.Cents }

// NonNegative floors m at zero.
func (m Money) NonNegative() Money {
	if m.Cents < 0 {
		return Money{}
	}
	return m
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float returns the amount in currency units for display and prompts.
// Use cents for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Percent returns pct percent of m, rounded to the nearest cent.
func (m Money) Percent(pct int64) Money {
	v := m.Decimal().Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100))
	return Money{Cents: v.Shift(2).Round(0).IntPart()}
}

// DivDays splits m over n days, rounded to the nearest cent.
func (m Money) DivDays(n int) Money {
	if n < 1 {
		n = 1
	}
	v := decimal.NewFromInt(m.Cents).Div(decimal.NewFromInt(int64(n)))
	return Money{Cents: v.Round(0).IntPart()}
}

// Format renders m with Portuguese digit grouping followed by the currency symbol.
func (m Money) Format(currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return printer.Sprintf("%.2f", m.Float()) + " " + currency
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a plain JSON number in currency units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	d, err := decimal.NewFromString(string(bytes.Trim(b, `"`)))
	if err != nil {
		return ErrInvalidAmount
	}
	v, err := fromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
