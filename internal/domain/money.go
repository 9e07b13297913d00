package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromUnits builds a Money from a whole-currency-unit amount,
// which is how catalog prices are stored.
func MoneyFromUnits(units int64, cur currency.Unit) Money {
	return Money{Amount: decimal.NewFromInt(units), Currency: cur}
}

func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(n)), Currency: m.Currency}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}{m.Amount, m.Currency.String()})
}
