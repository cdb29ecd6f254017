package in

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// AppointmentView is an appointment plus the actions a UI should offer for
// it in its current status.
type AppointmentView struct {
	domain.Appointment
	Actions []domain.AppointmentAction `json:"actions"`
}

type AuthUseCase interface {
	Login(ctx context.Context, creds out.Credentials) (*domain.Session, error)
	Register(ctx context.Context, req out.RegisterRequest) error
	Logout(ctx context.Context, sessionID string)
}

type AvailabilityUseCase interface {
	// AvailableSlots resolves the bookable set for a doctor+date. It returns
	// an error instead of silently failing open; the fallback policy belongs
	// to the caller (see DefaultDaySlots).
	AvailableSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error)

	// DefaultDaySlots is the full default business-day generation, the
	// documented fail-open fallback when taken slots cannot be fetched.
	DefaultDaySlots() []jsontypes.ClockTime
}

type BookingUseCase interface {
	Book(ctx context.Context, session domain.Session, req domain.BookingRequest) (*domain.Appointment, error)
}

type AppointmentUseCase interface {
	List(ctx context.Context) ([]AppointmentView, error)
	Mine(ctx context.Context) ([]AppointmentView, error)
	History(ctx context.Context, patientEmail string) ([]AppointmentView, error)

	// UpdateStatus and SaveDiagnosis re-read the full list after the
	// mutation and return it, so callers render authoritative state.
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) ([]AppointmentView, error)
	SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) ([]AppointmentView, error)

	Prescription(ctx context.Context, id int64) ([]byte, error)
}

type PatientUseCase interface {
	List(ctx context.Context) ([]domain.Patient, error)
	Get(ctx context.Context, id int64) (*domain.Patient, error)
	Create(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	Update(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error)

	// Search debounces per caller key: a newer query for the same key
	// cancels the pending one, which fails with ErrSearchSuperseded.
	Search(ctx context.Context, callerKey, query string) ([]domain.Patient, error)
}

type DoctorUseCase interface {
	List(ctx context.Context) ([]domain.Doctor, error)
}
