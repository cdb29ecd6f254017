package jsontypes

import (
	"encoding/json"
	"fmt"
	"time"
)

// CivilDate is a calendar date without time or timezone ("YYYY-MM-DD"),
// the format date pickers submit.
type CivilDate struct {
	Date time.Time
}

func ParseCivilDate(str string) (CivilDate, error) {
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return CivilDate{}, fmt.Errorf("failed to parse date %q: %v", str, err)
	}
	return CivilDate{Date: parsed}, nil
}

func (d CivilDate) String() string {
	return d.Date.Format("2006-01-02")
}

func (d CivilDate) Weekday() time.Weekday {
	return d.Date.Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d CivilDate) IsWeekend() bool {
	wd := d.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d CivilDate) IsZero() bool {
	return d.Date.IsZero()
}

func (d *CivilDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseCivilDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d CivilDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// LocalDateTime is a zoneless timestamp ("YYYY-MM-DDTHH:MM:SS"), the shape
// the backend expects for appointment dateTime values. The clinic runs in a
// single timezone, so no offset travels on the wire.
type LocalDateTime struct {
	Date time.Time
}

// Combine builds the timestamp submitted on booking: the chosen date plus
// the chosen slot, seconds always zero.
func Combine(date CivilDate, t ClockTime) LocalDateTime {
	d := date.Date
	return LocalDateTime{Date: time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, time.UTC)}
}

func ParseLocalDateTime(str string) (LocalDateTime, error) {
	parsed, err := time.Parse("2006-01-02T15:04:05", str)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("failed to parse datetime %q: %v", str, err)
	}
	return LocalDateTime{Date: parsed}, nil
}

func (t LocalDateTime) String() string {
	return t.Date.Format("2006-01-02T15:04:05")
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseLocalDateTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
