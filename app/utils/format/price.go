package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var money = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

func Price(amount decimal.Decimal) string {
	return money.FormatMoney(amount)
}
