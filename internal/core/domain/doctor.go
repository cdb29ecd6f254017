package domain

import (
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

// Default business day used whenever a doctor has no configured hours.
var (
	DefaultWorkStart = jsontypes.NewClockTime(9, 0)
	DefaultWorkEnd   = jsontypes.NewClockTime(18, 0)
)

type Doctor struct {
	ID                int64                `json:"id"`
	FirstName         string               `json:"firstName"`
	LastName          string               `json:"lastName"`
	Specialty         string               `json:"specialty"`
	Email             string               `json:"email"`
	Bio               string               `json:"bio,omitempty"`
	ConsultationPrice float64              `json:"consultationPrice"`
	WorkStart         *jsontypes.ClockTime `json:"workStart,omitempty"`
	WorkEnd           *jsontypes.ClockTime `json:"workEnd,omitempty"`
}

// WorkingHours resolves the doctor's bookable day, falling back to the
// default 09:00-18:00 business day when either bound is unset.
func (d Doctor) WorkingHours() (start, end jsontypes.ClockTime) {
	start = DefaultWorkStart
	end = DefaultWorkEnd

	if d.WorkStart != nil {
		start = *d.WorkStart
	}
	if d.WorkEnd != nil {
		end = *d.WorkEnd
	}

	return start, end
}

func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
