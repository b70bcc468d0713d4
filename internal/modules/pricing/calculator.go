package pricing

import (
	"github.com/shopspring/decimal"

	"towpricing/internal/types"
)

// ComputeTieredCost prices a trip against a tiered rate card.
//
// In excess-towing mode only ExcessKm is charged at the above-range price; the
// range limit and below-range price are ignored. Otherwise the below-range
// price covers everything up to RangeLimitKm and each further km is charged
// at the above-range price. A nil card prices at zero.
func ComputeTieredCost(totalKm decimal.Decimal, card *RateCard, excess ExcessTowing) decimal.Decimal {
	if card == nil {
		return decimal.Zero
	}
	if excess.IsExcess {
		return excess.ExcessKm.Mul(card.AboveRangePrice)
	}
	if totalKm.LessThanOrEqual(card.RangeLimitKm) {
		return card.BelowRangePrice
	}
	extraKm := totalKm.Sub(card.RangeLimitKm)
	return card.BelowRangePrice.Add(extraKm.Mul(card.AboveRangePrice))
}

type TaxBreakdown struct {
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ApplyTax applies a percentage tax. Negative taxable values are taxed as-is.
func ApplyTax(taxableValue, percentageRate decimal.Decimal) TaxBreakdown {
	tax := taxableValue.Mul(percentageRate.Shift(-2))
	return TaxBreakdown{
		TaxAmount:   tax,
		TotalAmount: taxableValue.Add(tax),
	}
}

// costInputs is everything needed to price one party once all lookups resolved.
type costInputs struct {
	totalKm    decimal.Decimal
	card       RateCard
	excess     ExcessTowing
	additional decimal.Decimal
	waiting    decimal.Decimal
	discount   decimal.Decimal
	taxRate    decimal.Decimal
}

func assemble(in costInputs) PricingResult {
	serviceCost := ComputeTieredCost(in.totalKm, &in.card, in.excess)
	taxable := serviceCost.Add(in.additional).Add(in.waiting).Sub(in.discount)
	tax := ApplyTax(taxable, in.taxRate)

	return PricingResult{
		TotalKm:          in.totalKm,
		ServiceCost:      types.RoundMoney(serviceCost),
		AdditionalCharge: types.RoundMoney(in.additional),
		WaitingCharge:    types.RoundMoney(in.waiting),
		DiscountAmount:   types.RoundMoney(in.discount),
		TotalTax:         types.RoundMoney(tax.TaxAmount),
		TotalAmount:      types.RoundMoney(tax.TotalAmount),
		RateCardUsed:     in.card,
	}
}
