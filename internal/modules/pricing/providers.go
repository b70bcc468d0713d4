package pricing

import (
	"context"

	"towpricing/internal/types"
)

// Repository is the local pricing store (client rate cards, tax rates, natural keys).
type Repository interface {
	ClientRateCard(ctx context.Context, clientID int64) (RateCard, error)
	ClientName(ctx context.Context, clientID int64) (string, error)
	AspCode(ctx context.Context, aspID int64) (string, error)
	SubService(ctx context.Context, subServiceID int64) (SubService, error)
	TaxRate(ctx context.Context, name string) (TaxRate, error)
}

// DistanceProvider measures one leg between two waypoints.
type DistanceProvider interface {
	Leg(ctx context.Context, from, to types.Waypoint) (types.Leg, error)
}

type AspRateCardQuery struct {
	AspCode    string
	SubService string
	Date       string
	IsMobile   bool
}

type NonMembershipQuery struct {
	ClientName     string
	ServiceName    string
	SubServiceName string
}

// RateCardProvider is the external CRM that owns ASP and non-membership rate cards.
// Implementations return ErrNoRateCard when the CRM has no matching card.
type RateCardProvider interface {
	AspRateCard(ctx context.Context, q AspRateCardQuery) (RateCard, error)
	NonMembershipRateCard(ctx context.Context, q NonMembershipQuery) (RateCard, error)
}

type ChargeQuery struct {
	CaseDetailID int64
	ActivityID   int64
	AspID        int64
	Kind         ChargeKind
}

// ChargeProvider is the case-management service holding per-activity charges.
type ChargeProvider interface {
	ActivityCharges(ctx context.Context, q ChargeQuery) (ActivityCharges, error)
}
