package jsontypes

import (
	"encoding/json"
	"fmt"
)

// ClockTime is a time of day with minute precision, the unit the whole
// booking flow works in. The backend serializes java.time.LocalTime, so
// values may arrive as "HH:MM" or "HH:MM:SS"; seconds are dropped.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime accepts "HH:MM" and "HH:MM:SS", truncating seconds.
func ParseClockTime(str string) (ClockTime, error) {
	var h, m, s int

	if _, err := fmt.Sscanf(str, "%d:%d:%d", &h, &m, &s); err != nil {
		if _, err := fmt.Sscanf(str, "%d:%d", &h, &m); err != nil {
			return ClockTime{}, fmt.Errorf("failed to parse clock time %q: %v", str, err)
		}
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", str)
	}

	return ClockTime{Hour: h, Minute: m}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TotalMinutes returns minutes since midnight.
func (t ClockTime) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.TotalMinutes() < other.TotalMinutes()
}

// AddMinutes never wraps past midnight; callers bound iteration by an end time.
func (t ClockTime) AddMinutes(minutes int) ClockTime {
	total := t.TotalMinutes() + minutes
	return ClockTime{Hour: total / 60, Minute: total % 60}
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
