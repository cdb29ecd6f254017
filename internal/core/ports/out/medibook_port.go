package out

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	PatientID int64       `json:"patientId,omitempty"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	DNI       string `json:"dni,omitempty"`
}

type BookRequest struct {
	DoctorID int64                   `json:"doctorId"`
	DateTime jsontypes.LocalDateTime `json:"dateTime"`
}

// MediBookPort is the upstream REST backend, the single source of truth for
// appointments, doctors and patients. Every method except Login/Register
// requires a bearer token carried in the context (see WithToken).
type MediBookPort interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error

	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	MyAppointments(ctx context.Context) ([]domain.Appointment, error)
	BookMe(ctx context.Context, req BookRequest, idempotencyKey string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) error
	PatientHistory(ctx context.Context, email string) ([]domain.Appointment, error)
	PrescriptionPDF(ctx context.Context, id int64) ([]byte, error)
	TakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error)

	ListDoctors(ctx context.Context) ([]domain.Doctor, error)

	ListPatients(ctx context.Context) ([]domain.Patient, error)
	GetPatient(ctx context.Context, id int64) (*domain.Patient, error)
	SearchPatients(ctx context.Context, query string) ([]domain.Patient, error)
	CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error)
}

type tokenContextKey struct{}

// WithToken attaches the session's bearer token for upstream calls. The
// session middleware is the only writer; the adapter is the only reader, so
// there is exactly one place each for storing and consuming credentials.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}
