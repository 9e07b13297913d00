package domain

import (
	"time"

	"golang.org/x/text/currency"
)

// Cart is the view of an account's pending cart: the lines joined with
// their live product snapshots plus derived totals. Prices are never
// cached at add time, so totals always reflect the current catalog.
type Cart struct {
	Username string     `json:"username"`
	Lines    []CartLine `json:"lines"`
	Total    Money      `json:"total"`
}

type CartLine struct {
	Product   Product   `json:"product"`
	Quantity  int32     `json:"quantity"`
	LineTotal Money     `json:"lineTotal"`
	CreatedAt time.Time `json:"createdAt"`
}

// LineQuantity is the minimal cart line shape checkout works with.
type LineQuantity struct {
	ProductID int64
	Quantity  int32
}

// NewCart computes line totals and the grand total in the given currency.
func NewCart(username string, lines []CartLine, cur currency.Unit) Cart {
	total := MoneyFromUnits(0, cur)

	for i, line := range lines {
		lineTotal := MoneyFromUnits(line.Product.Price, cur).MulInt(int64(line.Quantity))
		lines[i].LineTotal = lineTotal
		total = total.Add(lineTotal)
	}

	return Cart{
		Username: username,
		Lines:    lines,
		Total:    total,
	}
}
