package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"towpricing/internal/types"
)

type LegSet struct {
	Shape        TripShape
	Legs         []types.Leg
	TotalKm      decimal.Decimal
	TotalMinutes float64
	Duration     string
}

type legPlan struct {
	name     types.LegName
	from, to types.Waypoint
}

func (p TripPoints) plan() []legPlan {
	if p.Shape() == ThreeLeg {
		return []legPlan{
			{types.LegAspToPickup, p.Asp, p.Pickup},
			{types.LegPickupToDrop, p.Pickup, *p.Drop},
			{types.LegDropToAsp, *p.Drop, p.Asp},
		}
	}
	return []legPlan{
		{types.LegAspToPickup, p.Asp, p.Pickup},
		{types.LegPickupToAsp, p.Pickup, p.Asp},
	}
}

// ResolveLegs measures every leg of the trip concurrently. Distances are rounded
// to 2 places per leg before summing. One failed leg fails the whole set.
func ResolveLegs(ctx context.Context, provider DistanceProvider, points TripPoints) (LegSet, error) {
	plan := points.plan()
	legs := make([]types.Leg, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	for i, lp := range plan {
		goSafe(g, func() error {
			leg, err := provider.Leg(gctx, lp.from, lp.to)
			if err != nil {
				return fmt.Errorf("leg %s: %w", lp.name, err)
			}
			leg.Name = lp.name
			leg.From, leg.To = lp.from, lp.to
			leg.DistanceKm = types.RoundMoney(leg.DistanceKm)
			legs[i] = leg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LegSet{}, downstreamError("Unable to calculate distance", err)
	}

	set := LegSet{Shape: points.Shape(), Legs: legs, TotalKm: decimal.Zero}
	for _, leg := range legs {
		set.TotalKm = set.TotalKm.Add(leg.DistanceKm)
		set.TotalMinutes += leg.DurationMinutes
	}
	set.Duration = FormatDuration(set.TotalMinutes)
	return set, nil
}
