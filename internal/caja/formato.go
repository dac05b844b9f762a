package caja

import "github.com/shopspring/decimal"

// FormatoSigno renders a signed total for display: the sign always precedes
// the currency symbol and the absolute value follows, so -150 becomes
// "-$150.00", never "$-150.00". Non-negative values carry an explicit "+".
func FormatoSigno(monto decimal.Decimal) string {
	if monto.IsNegative() {
		return "-$" + monto.Abs().StringFixed(2)
	}
	return "+$" + monto.StringFixed(2)
}
