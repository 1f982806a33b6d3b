package page

import "time"

const (
	// ClockInterval is how often the navigation clock is recomputed.
	ClockInterval = time.Second

	// ClockLayout renders local wall-clock time as 24-hour hour:minute.
	ClockLayout = "15:04"
)

// FormatClock renders t in the local zone for the navigation clock.
func FormatClock(t time.Time) string {
	return t.Local().Format(ClockLayout)
}
