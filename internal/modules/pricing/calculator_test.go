package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTieredCost(t *testing.T) {
	card := &RateCard{RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d("20")}

	tests := []struct {
		name    string
		totalKm string
		excess  ExcessTowing
		want    string
	}{
		{name: "zero km is below range", totalKm: "0", want: "500"},
		{name: "below range", totalKm: "7.5", want: "500"},
		{name: "exactly at range limit", totalKm: "10", want: "500"},
		{name: "above range", totalKm: "15", want: "600"},
		{name: "fractional km above range", totalKm: "10.25", want: "505"},
		{name: "excess towing ignores tiers", totalKm: "3", excess: ExcessTowing{IsExcess: true, ExcessKm: d("4")}, want: "80"},
		{name: "excess towing with long trip", totalKm: "250", excess: ExcessTowing{IsExcess: true, ExcessKm: d("12.5")}, want: "250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTieredCost(d(tt.totalKm), card, tt.excess)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeTieredCost_BelowRangeIgnoresAbovePrice(t *testing.T) {
	for _, above := range []string{"0", "20", "999.99"} {
		card := &RateCard{RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d(above)}
		for _, km := range []string{"0", "1", "9.99", "10"} {
			got := ComputeTieredCost(d(km), card, ExcessTowing{})
			assert.True(t, got.Equal(d("500")), "km=%s above=%s got %s", km, above, got)
		}
	}
}

func TestComputeTieredCost_SlopeAboveRange(t *testing.T) {
	card := &RateCard{RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d("20")}
	prev := ComputeTieredCost(d("10.01"), card, ExcessTowing{})
	for _, km := range []string{"11", "12.5", "40", "1000"} {
		got := ComputeTieredCost(d(km), card, ExcessTowing{})
		assert.True(t, got.GreaterThan(prev), "cost must increase at %s", km)
		want := d("500").Add(d(km).Sub(d("10")).Mul(d("20")))
		assert.True(t, got.Equal(want), "km=%s got %s want %s", km, got, want)
		prev = got
	}
}

func TestComputeTieredCost_ExcessIgnoresRangeAndBelowPrice(t *testing.T) {
	excess := ExcessTowing{IsExcess: true, ExcessKm: d("6")}
	a := ComputeTieredCost(d("2"), &RateCard{RangeLimitKm: d("1"), BelowRangePrice: d("10"), AboveRangePrice: d("25")}, excess)
	b := ComputeTieredCost(d("90"), &RateCard{RangeLimitKm: d("100"), BelowRangePrice: d("9999"), AboveRangePrice: d("25")}, excess)
	assert.True(t, a.Equal(d("150")))
	assert.True(t, b.Equal(d("150")))
}

func TestComputeTieredCost_NilCard(t *testing.T) {
	assert.True(t, ComputeTieredCost(d("15"), nil, ExcessTowing{}).IsZero())
}

func TestComputeTieredCost_NoFloatDrift(t *testing.T) {
	card := &RateCard{RangeLimitKm: d("0"), BelowRangePrice: d("0"), AboveRangePrice: d("0.1")}
	sum := d("0")
	for i := 0; i < 10; i++ {
		sum = sum.Add(ComputeTieredCost(d("1"), card, ExcessTowing{}))
	}
	assert.Equal(t, "1", sum.String())
}

func TestApplyTax(t *testing.T) {
	got := ApplyTax(d("600"), d("18"))
	assert.True(t, got.TaxAmount.Equal(d("108")))
	assert.True(t, got.TotalAmount.Equal(d("708")))
	assert.Equal(t, "708.00", got.TotalAmount.StringFixed(2))
}

func TestApplyTax_Linear(t *testing.T) {
	for _, x := range []string{"0", "1", "123.45", "-80", "0.01", "99999.99"} {
		for _, r := range []string{"0", "5", "18", "12.5", "28"} {
			one := ApplyTax(d(x), d(r))
			two := ApplyTax(d(x).Mul(d("2")), d(r))
			assert.True(t, two.TaxAmount.Equal(one.TaxAmount.Mul(d("2"))), "x=%s r=%s", x, r)
		}
	}
}

func TestApplyTax_TotalIsTaxablePlusTax(t *testing.T) {
	for _, x := range []string{"0", "600", "-150.75", "0.333"} {
		got := ApplyTax(d(x), d("18"))
		assert.True(t, got.TotalAmount.Equal(d(x).Add(got.TaxAmount)), "x=%s", x)
	}
}

func TestApplyTax_NegativeTaxableIsNotClamped(t *testing.T) {
	got := ApplyTax(d("-100"), d("18"))
	assert.True(t, got.TaxAmount.Equal(d("-18")))
	assert.True(t, got.TotalAmount.Equal(d("-118")))
}

func TestAssemble_TaxableIncludesChargesMinusDiscount(t *testing.T) {
	res := assemble(costInputs{
		totalKm:    d("15"),
		card:       RateCard{RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d("20")},
		additional: d("100"),
		waiting:    d("50"),
		discount:   d("250"),
		taxRate:    d("18"),
	})
	// 600 + 100 + 50 - 250 = 500; tax 90
	assert.True(t, res.ServiceCost.Equal(d("600")))
	assert.True(t, res.TotalTax.Equal(d("90")))
	assert.True(t, res.TotalAmount.Equal(d("590")))
}

func TestPricingResult_JSONAmountsAtTwoPlaces(t *testing.T) {
	res := assemble(costInputs{
		totalKm: d("15"),
		card:    RateCard{RangeLimitKm: d("10"), BelowRangePrice: d("500"), AboveRangePrice: d("20")},
		taxRate: d("18"),
	})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "15.00", body["totalKm"])
	assert.Equal(t, "600.00", body["serviceCost"])
	assert.Equal(t, "0.00", body["additionalCharge"])
	assert.Equal(t, "0.00", body["discountAmount"])
	assert.Equal(t, "108.00", body["totalTax"])
	assert.Equal(t, "708.00", body["totalAmount"])
	assert.Contains(t, body, "rateCardUsed")
	assert.NotContains(t, body, "legs")
}
