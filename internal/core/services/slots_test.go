package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("Default Business Day", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(9, 0), jsontypes.NewClockTime(18, 0))

		assert.Len(t, slots, 18, "nine hours on a half-hour grid")
		assert.Equal(t, "09:00", slots[0].String(), "first slot is the opening time")
		assert.Equal(t, "17:30", slots[len(slots)-1].String(), "last slot starts before closing")
	})

	t.Run("End Is Exclusive", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(9, 0), jsontypes.NewClockTime(11, 0))

		expected := []string{"09:00", "09:30", "10:00", "10:30"}
		got := make([]string, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.String())
		}
		assert.Equal(t, expected, got)
	})

	t.Run("Chronological Order", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(8, 30), jsontypes.NewClockTime(17, 0))

		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Before(slots[i]), "slot %d should precede slot %d", i-1, i)
		}
	})

	t.Run("Uneven Start Keeps The Grid Anchored To It", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(9, 15), jsontypes.NewClockTime(10, 30))

		expected := []string{"09:15", "09:45", "10:15"}
		got := make([]string, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.String())
		}
		assert.Equal(t, expected, got)
	})

	t.Run("Empty When Start Equals End", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(9, 0), jsontypes.NewClockTime(9, 0))
		assert.Empty(t, slots)
	})

	t.Run("Empty When Start After End", func(t *testing.T) {
		slots := GenerateTimeSlots(jsontypes.NewClockTime(18, 0), jsontypes.NewClockTime(9, 0))
		assert.Empty(t, slots)
	})
}
