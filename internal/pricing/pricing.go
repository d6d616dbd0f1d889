package pricing

import "github.com/shopspring/decimal"

// Flat per-print pricing. Every branch charges the same unit price and
// tax rate; packages only bundle counts, they do not discount.
var (
	PricePerPhoto = decimal.RequireFromString("10.00")
	TaxRate       = decimal.RequireFromString("0.05")
)

// Totals computes the invoice amounts for a photo count. Values are
// rounded to two decimal places per currency convention.
func Totals(numPhotos int) (amount, tax, total decimal.Decimal) {
	amount = PricePerPhoto.Mul(decimal.NewFromInt(int64(numPhotos))).Round(2)
	tax = amount.Mul(TaxRate).Round(2)
	total = amount.Add(tax)
	return amount, tax, total
}
