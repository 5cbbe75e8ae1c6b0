package ds

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AmountScale число знаков после запятой в денежных колонках
const AmountScale = 2

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount сумма с разделителями разрядов и двумя знаками, например 1,234.50
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(AmountScale).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}
