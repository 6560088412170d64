package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp converts a timestamp like "1:23:45", "45:23" or "12.5" to a
// duration. Every component must be a finite, non-negative number.
func ParseTimestamp(timestamp string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(timestamp), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp format: %s", timestamp)
	}

	// Components are read from the right: seconds, minutes, hours.
	units := []struct {
		name  string
		scale float64
	}{{"seconds", 1}, {"minutes", 60}, {"hours", 3600}}

	var total float64
	for i := range parts {
		part := parts[len(parts)-1-i]
		unit := units[i]
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", unit.name, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid %s %q in timestamp %s", unit.name, part, timestamp)
		}
		total += v * unit.scale
	}
	return time.Duration(total * float64(time.Second)), nil
}

// FormatTimestamp renders a duration as MM:SS, or H:MM:SS past the hour.
func FormatTimestamp(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, (total/60)%60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
