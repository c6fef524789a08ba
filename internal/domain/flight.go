package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePlaces is the number of fractional digits a flight price may carry.
const PricePlaces = 2

// MaxPrice is the largest price the flights table's NUMERIC(12,2) column holds.
var MaxPrice = decimal.RequireFromString("9999999999.99")

// HasPricePrecision reports whether d fits in PricePlaces fractional digits.
func HasPricePrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PricePlaces))
}

type Flight struct {
	ID           int64
	Origin       string
	Destination  string
	Price        decimal.Decimal
	DiscountCode string
	CreatedAt    time.Time
}

// Discount is the amount returned by the discount service for a code.
type Discount struct {
	Amount decimal.Decimal `json:"discount"`
}

type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether price lies in [Min, Max].
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}
