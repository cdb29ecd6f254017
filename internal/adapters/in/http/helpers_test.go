package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/in"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noopLogger struct{}

func (noopLogger) Debug(string, out.LogFields)              {}
func (noopLogger) Info(string, out.LogFields)               {}
func (noopLogger) Warn(string, out.LogFields)               {}
func (noopLogger) Error(string, out.LogFields)              {}
func (l noopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l noopLogger) WithModule(string) out.LoggerPort        { return l }

// stubSessions is an in-memory session store seeded per test.
type stubSessions struct {
	sessions map[string]domain.Session
	deleted  []string
}

func newStubSessions(seed ...domain.Session) *stubSessions {
	s := &stubSessions{sessions: make(map[string]domain.Session)}
	for _, session := range seed {
		s.sessions[session.ID] = session
	}
	return s
}

func (s *stubSessions) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	if session.ID == "" {
		session.ID = fmt.Sprintf("session-%d", len(s.sessions)+1)
	}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *stubSessions) Get(_ context.Context, id string) (*domain.Session, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return &session, true
}

func (s *stubSessions) Delete(_ context.Context, id string) {
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
}

type stubAuth struct {
	LoginFn    func(ctx context.Context, creds out.Credentials) (*domain.Session, error)
	RegisterFn func(ctx context.Context, req out.RegisterRequest) error
	LogoutFn   func(ctx context.Context, sessionID string)
}

func (s *stubAuth) Login(ctx context.Context, creds out.Credentials) (*domain.Session, error) {
	return s.LoginFn(ctx, creds)
}

func (s *stubAuth) Register(ctx context.Context, req out.RegisterRequest) error {
	return s.RegisterFn(ctx, req)
}

func (s *stubAuth) Logout(ctx context.Context, sessionID string) {
	if s.LogoutFn != nil {
		s.LogoutFn(ctx, sessionID)
	}
}

type stubAvailability struct {
	AvailableSlotsFn func(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error)
	DefaultSlots     []jsontypes.ClockTime
}

func (s *stubAvailability) AvailableSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error) {
	return s.AvailableSlotsFn(ctx, doctorID, date)
}

func (s *stubAvailability) DefaultDaySlots() []jsontypes.ClockTime {
	return s.DefaultSlots
}

type stubBooking struct {
	BookFn func(ctx context.Context, session domain.Session, req domain.BookingRequest) (*domain.Appointment, error)
}

func (s *stubBooking) Book(ctx context.Context, session domain.Session, req domain.BookingRequest) (*domain.Appointment, error) {
	return s.BookFn(ctx, session, req)
}

type stubDoctors struct {
	ListFn func(ctx context.Context) ([]domain.Doctor, error)
}

func (s *stubDoctors) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.ListFn(ctx)
}

type stubAppointments struct {
	ListFn          func(ctx context.Context) ([]in.AppointmentView, error)
	MineFn          func(ctx context.Context) ([]in.AppointmentView, error)
	HistoryFn       func(ctx context.Context, email string) ([]in.AppointmentView, error)
	UpdateStatusFn  func(ctx context.Context, id int64, status domain.AppointmentStatus) ([]in.AppointmentView, error)
	SaveDiagnosisFn func(ctx context.Context, id int64, diagnosis, treatment string) ([]in.AppointmentView, error)
	PrescriptionFn  func(ctx context.Context, id int64) ([]byte, error)
}

func (s *stubAppointments) List(ctx context.Context) ([]in.AppointmentView, error) {
	return s.ListFn(ctx)
}

func (s *stubAppointments) Mine(ctx context.Context) ([]in.AppointmentView, error) {
	return s.MineFn(ctx)
}

func (s *stubAppointments) History(ctx context.Context, email string) ([]in.AppointmentView, error) {
	return s.HistoryFn(ctx, email)
}

func (s *stubAppointments) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) ([]in.AppointmentView, error) {
	return s.UpdateStatusFn(ctx, id, status)
}

func (s *stubAppointments) SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) ([]in.AppointmentView, error) {
	return s.SaveDiagnosisFn(ctx, id, diagnosis, treatment)
}

func (s *stubAppointments) Prescription(ctx context.Context, id int64) ([]byte, error) {
	return s.PrescriptionFn(ctx, id)
}

type stubPatients struct {
	ListFn   func(ctx context.Context) ([]domain.Patient, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Patient, error)
	CreateFn func(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdateFn func(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error)
	SearchFn func(ctx context.Context, callerKey, query string) ([]domain.Patient, error)
}

func (s *stubPatients) List(ctx context.Context) ([]domain.Patient, error) {
	return s.ListFn(ctx)
}

func (s *stubPatients) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.GetFn(ctx, id)
}

func (s *stubPatients) Create(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	return s.CreateFn(ctx, patient)
}

func (s *stubPatients) Update(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error) {
	return s.UpdateFn(ctx, id, patient)
}

func (s *stubPatients) Search(ctx context.Context, callerKey, query string) ([]domain.Patient, error) {
	return s.SearchFn(ctx, callerKey, query)
}

// newGatedRouter builds a router with the session middleware installed, the
// way the application wires it.
func newGatedRouter(sessions out.SessionStorePort) (*gin.Engine, *SessionGate) {
	gate := NewSessionGate(sessions, noopLogger{})
	router := gin.New()
	router.Use(gate.Resolve())
	return router, gate
}
