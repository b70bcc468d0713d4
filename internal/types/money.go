// README: Money and distance value helpers shared across modules.
package types

import "github.com/shopspring/decimal"

// CurrencyScale is the number of decimal places shown for amounts and kilometres.
const CurrencyScale = 2

var metersPerKm = decimal.NewFromInt(1000)

// RoundMoney rounds an amount half away from zero to CurrencyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// MetersToKm converts a provider distance in meters into kilometres rounded to 2 places.
func MetersToKm(meters int) decimal.Decimal {
	return decimal.NewFromInt(int64(meters)).Div(metersPerKm).Round(CurrencyScale)
}

// NullOrZero unwraps an optional amount, treating an absent value as zero.
func NullOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
