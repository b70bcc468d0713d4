// README: Pricing rate cards, charges, trip shapes and results.
package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"towpricing/internal/types"
)

// DefaultTaxName is the tax applied to every priced trip.
const DefaultTaxName = "IGST"

// NonMembershipExcessKm marks an activity billed only for the distance beyond coverage.
const NonMembershipExcessKm = "Excess KM"

type RateCard struct {
	RangeLimitKm         decimal.Decimal     `json:"rangeLimitKm"`
	BelowRangePrice      decimal.Decimal     `json:"belowRangePrice"`
	AboveRangePrice      decimal.Decimal     `json:"aboveRangePrice"`
	WaitingChargePerHour decimal.NullDecimal `json:"waitingChargePerHour"`
}

type TaxRate struct {
	Name           string
	PercentageRate decimal.Decimal
}

type SubService struct {
	ID          int64
	Name        string
	ServiceName string
}

// ChargeKind is the charge phase understood by the case service (its typeId).
type ChargeKind int

const (
	ChargeEstimated ChargeKind = 1
	ChargeActual    ChargeKind = 2
)

// ChargeFetchPolicy decides once per request whether activity charges are fetched.
type ChargeFetchPolicy int

const (
	ChargeSkip ChargeFetchPolicy = iota
	ChargeFetchEstimated
	ChargeFetchActual
)

// Kind returns the charge phase to fetch, or false when fetching is skipped.
func (p ChargeFetchPolicy) Kind() (ChargeKind, bool) {
	switch p {
	case ChargeFetchEstimated:
		return ChargeEstimated, true
	case ChargeFetchActual:
		return ChargeActual, true
	default:
		return 0, false
	}
}

func (p ChargeFetchPolicy) MarshalText() ([]byte, error) {
	switch p {
	case ChargeFetchEstimated:
		return []byte("estimated"), nil
	case ChargeFetchActual:
		return []byte("actual"), nil
	default:
		return []byte("skip"), nil
	}
}

func (p *ChargeFetchPolicy) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "skip":
		*p = ChargeSkip
	case "estimated":
		*p = ChargeFetchEstimated
	case "actual":
		*p = ChargeFetchActual
	default:
		return fmt.Errorf("unknown charge policy %q", string(b))
	}
	return nil
}

type ActivityCharges struct {
	EstimatedAdditionalCharge    decimal.Decimal
	ActualAdditionalCharge       decimal.Decimal
	EstimatedClientWaitingCharge decimal.Decimal
	ActualClientWaitingCharge    decimal.Decimal
	ActualAspWaitingCharge       decimal.Decimal
	DiscountAmount               decimal.Decimal
	CustomerNeedToPay            bool
	NonMembershipType            string
	AdditionalChargeableKm       decimal.NullDecimal
}

// AdditionalCharge picks the additional charge for the given phase.
func (c ActivityCharges) AdditionalCharge(kind ChargeKind) decimal.Decimal {
	if kind == ChargeActual {
		return c.ActualAdditionalCharge
	}
	return c.EstimatedAdditionalCharge
}

// Excess derives excess-towing mode from the activity's non-membership data.
func (c ActivityCharges) Excess() ExcessTowing {
	if c.NonMembershipType == NonMembershipExcessKm && c.AdditionalChargeableKm.Valid {
		return ExcessTowing{IsExcess: true, ExcessKm: c.AdditionalChargeableKm.Decimal}
	}
	return ExcessTowing{}
}

type ExcessTowing struct {
	IsExcess bool            `json:"isExcess"`
	ExcessKm decimal.Decimal `json:"excessKm"`
}

type TripShape int

const (
	RoundTrip TripShape = iota
	ThreeLeg
)

// TripPoints are the named waypoints of a trip. A nil Drop means a round trip.
type TripPoints struct {
	Asp    types.Waypoint  `json:"asp"`
	Pickup types.Waypoint  `json:"pickup"`
	Drop   *types.Waypoint `json:"drop,omitempty"`
}

func (p TripPoints) Shape() TripShape {
	if p.Drop != nil {
		return ThreeLeg
	}
	return RoundTrip
}

// RateCardSource selects which rate card prices the client side.
type RateCardSource int

const (
	ClientCard RateCardSource = iota
	NonMembershipCard
)

func sourceFor(nonMembership bool) RateCardSource {
	if nonMembership {
		return NonMembershipCard
	}
	return ClientCard
}

type PricingResult struct {
	TotalKm              decimal.Decimal `json:"totalKm"`
	TotalDuration        string          `json:"totalDuration,omitempty"`
	TotalDurationMinutes float64         `json:"totalDurationMinutes,omitempty"`
	ServiceCost          decimal.Decimal `json:"serviceCost"`
	AdditionalCharge     decimal.Decimal `json:"additionalCharge"`
	WaitingCharge        decimal.Decimal `json:"waitingCharge"`
	DiscountAmount       decimal.Decimal `json:"discountAmount"`
	TotalTax             decimal.Decimal `json:"totalTax"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	RateCardUsed         RateCard        `json:"rateCardUsed"`
	Legs                 []types.Leg     `json:"legs,omitempty"`
}

// MarshalJSON renders distance and amounts at a fixed 2 places, e.g. "708.00".
func (r PricingResult) MarshalJSON() ([]byte, error) {
	type plain PricingResult
	fixed := func(d decimal.Decimal) string { return d.StringFixed(types.CurrencyScale) }
	return json.Marshal(struct {
		plain
		TotalKm          string `json:"totalKm"`
		ServiceCost      string `json:"serviceCost"`
		AdditionalCharge string `json:"additionalCharge"`
		WaitingCharge    string `json:"waitingCharge"`
		DiscountAmount   string `json:"discountAmount"`
		TotalTax         string `json:"totalTax"`
		TotalAmount      string `json:"totalAmount"`
	}{
		plain:            plain(r),
		TotalKm:          fixed(r.TotalKm),
		ServiceCost:      fixed(r.ServiceCost),
		AdditionalCharge: fixed(r.AdditionalCharge),
		WaitingCharge:    fixed(r.WaitingCharge),
		DiscountAmount:   fixed(r.DiscountAmount),
		TotalTax:         fixed(r.TotalTax),
		TotalAmount:      fixed(r.TotalAmount),
	})
}

type RouteDeviationCost struct {
	TotalKm decimal.Decimal `json:"totalKm"`
	Client  PricingResult   `json:"client"`
	Asp     PricingResult   `json:"asp"`
}

type ActivityCost struct {
	ActivityID int64         `json:"activityId"`
	Client     PricingResult `json:"client"`
	Asp        PricingResult `json:"asp"`
}
