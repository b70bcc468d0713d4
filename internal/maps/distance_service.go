package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"towpricing/internal/types"
)

// ErrNoRoute is returned when the provider answers but has no usable element for the pair.
var ErrNoRoute = errors.New("no route found")

// DistanceService handles interactions with the Google Distance Matrix API.
type DistanceService struct {
	client *maps.Client
}

// NewDistanceService creates a DistanceService with the given API Key.
// Extra client options (for example maps.WithBaseURL in tests) are appended.
func NewDistanceService(apiKey string, opts ...maps.ClientOption) (*DistanceService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

// Leg returns the driving distance and duration between two waypoints.
// Distance is converted to kilometres (2 places) and duration to minutes.
func (s *DistanceService) Leg(ctx context.Context, from, to types.Waypoint) (types.Leg, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{from.String()},
		Destinations: []string{to.String()},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return types.Leg{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return types.Leg{}, ErrNoRoute
	}

	el := resp.Rows[0].Elements[0]
	if el == nil || el.Status != "OK" {
		return types.Leg{}, ErrNoRoute
	}

	return types.Leg{
		From:            from,
		To:              to,
		DistanceKm:      types.MetersToKm(el.Distance.Meters),
		DurationMinutes: el.Duration.Seconds() / 60,
	}, nil
}
