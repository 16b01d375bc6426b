package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

// ApplyDiscount returns the price after discountPercent, rounded to cents.
func ApplyDiscount(price, discountPercent decimal.Decimal) decimal.Decimal {
	return price.Sub(CalculateDiscount(price, discountPercent)).Round(2)
}
