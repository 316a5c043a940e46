package domain

import "github.com/shopspring/decimal"

// Money is a fixed-precision decimal amount tagged with a currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// USD builds a Money value from a count of cents: the amount is cents / 100
// (USD(12000) is 120.00), displayed with two decimal places.
func USD(cents int64) Money {
	return Money{Amount: decimal.New(cents, -2), Currency: "USD"}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// Percent returns the Money scaled by pct/100, rounded to 2 decimal places.
func (m Money) Percent(pct int) Money {
	factor := decimal.New(int64(pct), -2)
	return Money{Amount: m.Amount.Mul(factor).Round(2), Currency: m.Currency}
}

// Scale returns the Money multiplied by an integer factor.
func (m Money) Scale(factor int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(factor))), Currency: m.Currency}
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}
