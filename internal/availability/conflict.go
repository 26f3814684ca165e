package availability

// HasConflict reports whether [start, end) on date overlaps an existing reservation of
// resourceName. Bounds are compared exactly, without slot rounding, and touching
// intervals do not conflict. An incomplete or unparseable candidate never conflicts.
func HasConflict(reservations []Reservation, date, resourceName, start, end string) bool {
	if date == "" || start == "" || end == "" {
		return false
	}
	newStart, okStart := ParseTimeToMinutes(start)
	newEnd, okEnd := ParseTimeToMinutes(end)
	if !okStart || !okEnd {
		return false
	}

	target := NormalizeDate(date)
	for _, r := range reservations {
		if !sameDayAndResource(r, target, resourceName) {
			continue
		}
		existingStart, ok1 := ParseTimeToMinutes(r.StartTime)
		existingEnd, ok2 := ParseTimeToMinutes(r.EndTime)
		if !ok1 || !ok2 {
			continue
		}
		if newStart < existingEnd && newEnd > existingStart {
			return true
		}
	}
	return false
}
