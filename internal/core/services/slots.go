package services

import (
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

// Appointments are booked on a fixed half-hour grid.
const SlotDurationMinutes = 30

// GenerateTimeSlots produces the candidate slots between start (inclusive)
// and end (exclusive), 30 minutes apart. A 09:00-18:00 day yields
// 09:00 ... 17:30, never 18:00: a slot starting at closing time would run
// past it. start >= end yields nothing. Pure: no dependence on today's
// date, only hours and minutes.
func GenerateTimeSlots(start, end jsontypes.ClockTime) []jsontypes.ClockTime {
	var slots []jsontypes.ClockTime

	for current := start; current.Before(end); current = current.AddMinutes(SlotDurationMinutes) {
		slots = append(slots, current)
	}

	return slots
}
