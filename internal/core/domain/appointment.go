package domain

import (
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsTerminal reports whether no further status transition is offered.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// AppointmentAction is a UI affordance the gateway tells its consumers to
// offer. Legality of the resulting transition stays with the backend.
type AppointmentAction string

const (
	ActionCancel       AppointmentAction = "cancel"
	ActionComplete     AppointmentAction = "complete"
	ActionDiagnose     AppointmentAction = "diagnose"
	ActionPrescription AppointmentAction = "prescription"
)

type Appointment struct {
	ID           int64                   `json:"id"`
	DateTime     jsontypes.LocalDateTime `json:"dateTime"`
	PatientName  string                  `json:"patientName"`
	PatientEmail *string                 `json:"patientEmail"`
	DoctorName   string                  `json:"doctorName"`
	Status       AppointmentStatus       `json:"status"`
	Diagnosis    string                  `json:"diagnosis,omitempty"`
	Treatment    string                  `json:"treatment,omitempty"`
}

// OfferedActions mirrors what the admin list renders per row: cancel and
// complete until a terminal status is reached, clinical-note actions once
// the appointment is COMPLETED.
func (a Appointment) OfferedActions() []AppointmentAction {
	var actions []AppointmentAction

	if !a.Status.IsTerminal() {
		actions = append(actions, ActionCancel, ActionComplete)
	}
	if a.Status == AppointmentStatusCompleted {
		actions = append(actions, ActionDiagnose, ActionPrescription)
	}

	return actions
}

// BookingRequest is a patient's booking submission after form-level
// validation: all three fields are required.
type BookingRequest struct {
	DoctorID int64
	Date     jsontypes.CivilDate
	Time     jsontypes.ClockTime
}
