package pricing

import (
	"fmt"
	"math"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// FormatDuration renders minutes as "<d> days <h> hours <m> minutes", dropping
// leading zero units. Hours are dropped when zero even if days are shown.
// Minutes round half to even.
func FormatDuration(totalMinutes float64) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	days := int(math.Floor(totalMinutes / minutesPerDay))
	hours := int(math.Floor(math.Mod(totalMinutes, minutesPerDay) / minutesPerHour))
	minutes := int(math.RoundToEven(math.Mod(totalMinutes, minutesPerHour)))

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%d days %d hours %d minutes", days, hours, minutes)
	case days > 0:
		return fmt.Sprintf("%d days %d minutes", days, minutes)
	case hours > 0:
		return fmt.Sprintf("%d hours %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
