package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towpricing/internal/types"
)

var (
	aspPt    = wp("12.9716", "77.5946")
	pickupPt = wp("12.9352", "77.6245")
	dropPt   = wp("13.0358", "77.5970")
)

func threeLegDistance() *fakeDistance {
	dist := newFakeDistance()
	dist.set(aspPt, pickupPt, "5", 120)
	dist.set(pickupPt, dropPt, "8", 300)
	dist.set(dropPt, aspPt, "4", 90)
	return dist
}

func TestResolveLegs_ThreeLeg(t *testing.T) {
	drop := dropPt
	set, err := ResolveLegs(context.Background(), threeLegDistance(), TripPoints{Asp: aspPt, Pickup: pickupPt, Drop: &drop})
	require.NoError(t, err)

	assert.Equal(t, ThreeLeg, set.Shape)
	require.Len(t, set.Legs, 3)
	assert.Equal(t, types.LegAspToPickup, set.Legs[0].Name)
	assert.Equal(t, types.LegPickupToDrop, set.Legs[1].Name)
	assert.Equal(t, types.LegDropToAsp, set.Legs[2].Name)
	assert.Equal(t, "17.00", set.TotalKm.StringFixed(2))
	assert.InDelta(t, 8.5, set.TotalMinutes, 1e-9)
	assert.Equal(t, "8 minutes", set.Duration)
}

func TestResolveLegs_RoundTripWithoutDrop(t *testing.T) {
	dist := newFakeDistance()
	dist.set(aspPt, pickupPt, "6.5", 600)
	dist.set(pickupPt, aspPt, "6.25", 540)

	set, err := ResolveLegs(context.Background(), dist, TripPoints{Asp: aspPt, Pickup: pickupPt})
	require.NoError(t, err)

	assert.Equal(t, RoundTrip, set.Shape)
	require.Len(t, set.Legs, 2)
	assert.Equal(t, types.LegPickupToAsp, set.Legs[1].Name)
	assert.True(t, set.TotalKm.Equal(d("12.75")))
	assert.Equal(t, "19 minutes", set.Duration)
	assert.Equal(t, 2, dist.Calls())
}

func TestResolveLegs_RoundsEachLegBeforeSumming(t *testing.T) {
	dist := newFakeDistance()
	drop := dropPt
	dist.set(aspPt, pickupPt, "1.004", 60)
	dist.set(pickupPt, dropPt, "1.004", 60)
	dist.set(dropPt, aspPt, "1.004", 60)

	set, err := ResolveLegs(context.Background(), dist, TripPoints{Asp: aspPt, Pickup: pickupPt, Drop: &drop})
	require.NoError(t, err)
	// rounding only the sum would give 3.01
	assert.Equal(t, "3.00", set.TotalKm.StringFixed(2))
}

func TestResolveLegs_OneFailedLegFailsAll(t *testing.T) {
	dist := threeLegDistance()
	dist.fail[pickupPt.String()+"->"+dropPt.String()] = errors.New("quota exceeded")
	drop := dropPt

	set, err := ResolveLegs(context.Background(), dist, TripPoints{Asp: aspPt, Pickup: pickupPt, Drop: &drop})
	require.Error(t, err)
	assert.Empty(t, set.Legs)
	assert.True(t, set.TotalKm.IsZero())

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindDownstream, perr.Kind)
	assert.Contains(t, err.Error(), "quota exceeded")
}
