// Package availability turns a list of room reservations into the occupied and
// selectable 30-minute slots of a day, and checks candidate bookings for overlap.
//
// Every function here is pure: callers pass the reservation snapshot and the current
// time explicitly.
package availability

import (
	"sort"
	"time"
)

const (
	// MeetingRoom is the only resource the booking grid is computed for.
	MeetingRoom = "Meeting Room"

	SlotMinutes = 30

	// Buffer is the minimum lead time between now and a same-day slot start.
	Buffer = 30 * time.Minute

	// GridFirstMinute and GridLastMinute bound the daily grid, 07:00 to 23:00.
	GridFirstMinute = 7 * 60
	GridLastMinute  = 23 * 60
)

// Reservation is the caller-owned view of an existing booking.
type Reservation struct {
	ID            int64
	ResourceName  string
	Date          string
	StartTime     string
	EndTime       string
	AttendeeCount int
}

// SlotSet holds slot labels ("HH:MM") for one resource on one date.
type SlotSet map[string]struct{}

func (s SlotSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Labels returns the slot labels in ascending time order.
func (s SlotSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Grid returns the daily booking grid: 07:00, 07:30, ..., 22:30, 23:00.
// The final point closes the day and has no slot after it.
func Grid() []string {
	grid := make([]string, 0, (GridLastMinute-GridFirstMinute)/SlotMinutes+1)
	for m := GridFirstMinute; m <= GridLastMinute; m += SlotMinutes {
		grid = append(grid, FormatMinutes(m))
	}
	return grid
}

// OccupiedSlots marks every grid slot touched by a reservation of resourceName on date.
// Reservation bounds are widened to slot edges, so a partial overlap blocks the whole slot.
// Unparseable, zero-length and inverted reservations contribute nothing.
func OccupiedSlots(reservations []Reservation, date, resourceName string) SlotSet {
	occupied := SlotSet{}
	target := NormalizeDate(date)

	for _, r := range reservations {
		if !sameDayAndResource(r, target, resourceName) {
			continue
		}
		start, okStart := ParseTimeToMinutes(r.StartTime)
		end, okEnd := ParseTimeToMinutes(r.EndTime)
		if !okStart || !okEnd {
			continue
		}

		for m := floorToSlot(start); m < ceilToSlot(end); m += SlotMinutes {
			occupied[FormatMinutes(m)] = struct{}{}
		}
	}
	return occupied
}

// AvailableStartEndOptions filters grid down to the labels that can still be picked as a
// start or end time on date. Occupied slots are always removed; when date is today
// (in now's location) slots starting less than Buffer after now are removed too.
// Past dates are not rejected here.
func AvailableStartEndOptions(reservations []Reservation, date, resourceName string, grid []string, now time.Time) []string {
	if date == "" {
		return append([]string(nil), grid...)
	}

	occupied := OccupiedSlots(reservations, date, resourceName)
	isToday := NormalizeDate(date) == now.Format("2006-01-02")
	earliest := now.Add(Buffer)

	options := make([]string, 0, len(grid))
	for _, label := range grid {
		if occupied.Has(label) {
			continue
		}
		if isToday {
			if m, ok := ParseTimeToMinutes(label); ok {
				slotStart := time.Date(now.Year(), now.Month(), now.Day(), 0, m, 0, 0, now.Location())
				if slotStart.Before(earliest) {
					continue
				}
			}
		}
		options = append(options, label)
	}
	return options
}

func sameDayAndResource(r Reservation, normalizedDate, resourceName string) bool {
	return r.ResourceName == resourceName && NormalizeDate(r.Date) == normalizedDate
}
