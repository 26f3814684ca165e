package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeToMinutes converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// A missing minutes field counts as zero and seconds are discarded. Values are not
// range checked. ok is false when the input is empty or any field is not numeric.
func ParseTimeToMinutes(value string) (minutes int, ok bool) {
	if strings.TrimSpace(value) == "" {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}

	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, false
		}
		fields[i] = n
	}

	minutes = fields[0] * 60
	if len(fields) > 1 {
		minutes += fields[1]
	}
	return minutes, true
}

// NormalizeDate strips a trailing time component ("2024-06-10T00:00:00Z" -> "2024-06-10").
func NormalizeDate(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// FormatMinutes renders minutes since midnight as an "HH:MM" slot label.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func floorToSlot(minutes int) int {
	q := minutes / SlotMinutes
	if minutes%SlotMinutes != 0 && minutes < 0 {
		q--
	}
	return q * SlotMinutes
}

func ceilToSlot(minutes int) int {
	q := minutes / SlotMinutes
	if minutes%SlotMinutes != 0 && minutes > 0 {
		q++
	}
	return q * SlotMinutes
}
