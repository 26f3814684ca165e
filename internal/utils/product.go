package utils

import (
	"strings"

	"beworking/internal/availability"
)

var productAliases = map[string]string{
	"meeting room":      availability.MeetingRoom,
	"meeting-room":      availability.MeetingRoom,
	"meetingroom":       availability.MeetingRoom,
	"sala de reuniones": availability.MeetingRoom,
}

// CanonicalProduct maps the names clients send for a bookable product onto the name
// bookings are stored under. Unknown products are only trimmed.
func CanonicalProduct(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := productAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// UsesSlotGrid reports whether product is booked on the 30-minute room grid.
func UsesSlotGrid(product string) bool {
	return CanonicalProduct(product) == availability.MeetingRoom
}
