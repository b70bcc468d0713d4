// README: Geographic value objects used by the leg resolver and map adapters.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Waypoint struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// IsZero reports whether either coordinate is missing.
func (w Waypoint) IsZero() bool {
	return strings.TrimSpace(w.Latitude) == "" || strings.TrimSpace(w.Longitude) == ""
}

// String renders the "lat,long" form accepted by the Distance Matrix API.
func (w Waypoint) String() string {
	return fmt.Sprintf("%s,%s", strings.TrimSpace(w.Latitude), strings.TrimSpace(w.Longitude))
}

type LegName string

const (
	LegAspToPickup  LegName = "aspToPickup"
	LegPickupToDrop LegName = "pickupToDrop"
	LegDropToAsp    LegName = "dropToAsp"
	LegPickupToAsp  LegName = "pickupToAsp"
)

// Leg is one resolved point-to-point segment of a trip.
type Leg struct {
	Name            LegName         `json:"name"`
	From            Waypoint        `json:"from"`
	To              Waypoint        `json:"to"`
	DistanceKm      decimal.Decimal `json:"distanceKm"`
	DurationMinutes float64         `json:"durationMinutes"`
}
