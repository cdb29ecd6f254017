package services

import (
	"context"
	"fmt"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// mockBackend implements out.MediBookPort with overridable function fields.
// Unset methods fail loudly so a test never silently exercises a path it
// did not stub.
type mockBackend struct {
	LoginFn            func(ctx context.Context, creds out.Credentials) (*out.LoginResult, error)
	RegisterFn         func(ctx context.Context, req out.RegisterRequest) error
	ListAppointmentsFn func(ctx context.Context) ([]domain.Appointment, error)
	MyAppointmentsFn   func(ctx context.Context) ([]domain.Appointment, error)
	BookMeFn           func(ctx context.Context, req out.BookRequest, idempotencyKey string) (*domain.Appointment, error)
	UpdateStatusFn     func(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SaveDiagnosisFn    func(ctx context.Context, id int64, diagnosis, treatment string) error
	PatientHistoryFn   func(ctx context.Context, email string) ([]domain.Appointment, error)
	PrescriptionPDFFn  func(ctx context.Context, id int64) ([]byte, error)
	TakenSlotsFn       func(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error)
	ListDoctorsFn      func(ctx context.Context) ([]domain.Doctor, error)
	ListPatientsFn     func(ctx context.Context) ([]domain.Patient, error)
	GetPatientFn       func(ctx context.Context, id int64) (*domain.Patient, error)
	SearchPatientsFn   func(ctx context.Context, query string) ([]domain.Patient, error)
	CreatePatientFn    func(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatientFn    func(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error)
}

func (m *mockBackend) Login(ctx context.Context, creds out.Credentials) (*out.LoginResult, error) {
	if m.LoginFn == nil {
		return nil, fmt.Errorf("unexpected Login call")
	}
	return m.LoginFn(ctx, creds)
}

func (m *mockBackend) Register(ctx context.Context, req out.RegisterRequest) error {
	if m.RegisterFn == nil {
		return fmt.Errorf("unexpected Register call")
	}
	return m.RegisterFn(ctx, req)
}

func (m *mockBackend) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	if m.ListAppointmentsFn == nil {
		return nil, fmt.Errorf("unexpected ListAppointments call")
	}
	return m.ListAppointmentsFn(ctx)
}

func (m *mockBackend) MyAppointments(ctx context.Context) ([]domain.Appointment, error) {
	if m.MyAppointmentsFn == nil {
		return nil, fmt.Errorf("unexpected MyAppointments call")
	}
	return m.MyAppointmentsFn(ctx)
}

func (m *mockBackend) BookMe(ctx context.Context, req out.BookRequest, idempotencyKey string) (*domain.Appointment, error) {
	if m.BookMeFn == nil {
		return nil, fmt.Errorf("unexpected BookMe call")
	}
	return m.BookMeFn(ctx, req, idempotencyKey)
}

func (m *mockBackend) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if m.UpdateStatusFn == nil {
		return fmt.Errorf("unexpected UpdateStatus call")
	}
	return m.UpdateStatusFn(ctx, id, status)
}

func (m *mockBackend) SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) error {
	if m.SaveDiagnosisFn == nil {
		return fmt.Errorf("unexpected SaveDiagnosis call")
	}
	return m.SaveDiagnosisFn(ctx, id, diagnosis, treatment)
}

func (m *mockBackend) PatientHistory(ctx context.Context, email string) ([]domain.Appointment, error) {
	if m.PatientHistoryFn == nil {
		return nil, fmt.Errorf("unexpected PatientHistory call")
	}
	return m.PatientHistoryFn(ctx, email)
}

func (m *mockBackend) PrescriptionPDF(ctx context.Context, id int64) ([]byte, error) {
	if m.PrescriptionPDFFn == nil {
		return nil, fmt.Errorf("unexpected PrescriptionPDF call")
	}
	return m.PrescriptionPDFFn(ctx, id)
}

func (m *mockBackend) TakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error) {
	if m.TakenSlotsFn == nil {
		return nil, fmt.Errorf("unexpected TakenSlots call")
	}
	return m.TakenSlotsFn(ctx, doctorID, date)
}

func (m *mockBackend) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	if m.ListDoctorsFn == nil {
		return nil, fmt.Errorf("unexpected ListDoctors call")
	}
	return m.ListDoctorsFn(ctx)
}

func (m *mockBackend) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	if m.ListPatientsFn == nil {
		return nil, fmt.Errorf("unexpected ListPatients call")
	}
	return m.ListPatientsFn(ctx)
}

func (m *mockBackend) GetPatient(ctx context.Context, id int64) (*domain.Patient, error) {
	if m.GetPatientFn == nil {
		return nil, fmt.Errorf("unexpected GetPatient call")
	}
	return m.GetPatientFn(ctx, id)
}

func (m *mockBackend) SearchPatients(ctx context.Context, query string) ([]domain.Patient, error) {
	if m.SearchPatientsFn == nil {
		return nil, fmt.Errorf("unexpected SearchPatients call")
	}
	return m.SearchPatientsFn(ctx, query)
}

func (m *mockBackend) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	if m.CreatePatientFn == nil {
		return nil, fmt.Errorf("unexpected CreatePatient call")
	}
	return m.CreatePatientFn(ctx, patient)
}

func (m *mockBackend) UpdatePatient(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error) {
	if m.UpdatePatientFn == nil {
		return nil, fmt.Errorf("unexpected UpdatePatient call")
	}
	return m.UpdatePatientFn(ctx, id, patient)
}

// mockCache is an in-memory out.CachePort for asserting cache interactions.
type mockCache struct {
	taken       map[string][]jsontypes.ClockTime
	doctors     []domain.Doctor
	hasDoctors  bool
	invalidated []string
	purged      int
}

func newMockCache() *mockCache {
	return &mockCache{taken: make(map[string][]jsontypes.ClockTime)}
}

func takenKey(doctorID int64, date jsontypes.CivilDate) string {
	return fmt.Sprintf("%d|%s", doctorID, date)
}

func (m *mockCache) GetTakenSlots(_ context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, bool) {
	taken, ok := m.taken[takenKey(doctorID, date)]
	return taken, ok
}

func (m *mockCache) StoreTakenSlots(_ context.Context, doctorID int64, date jsontypes.CivilDate, taken []jsontypes.ClockTime) {
	m.taken[takenKey(doctorID, date)] = taken
}

func (m *mockCache) InvalidateTakenSlots(_ context.Context, doctorID int64, date jsontypes.CivilDate) {
	key := takenKey(doctorID, date)
	delete(m.taken, key)
	m.invalidated = append(m.invalidated, key)
}

func (m *mockCache) PurgeTakenSlots(_ context.Context) {
	m.taken = make(map[string][]jsontypes.ClockTime)
	m.purged++
}

func (m *mockCache) GetDoctors(_ context.Context) ([]domain.Doctor, bool) {
	return m.doctors, m.hasDoctors
}

func (m *mockCache) StoreDoctors(_ context.Context, doctors []domain.Doctor) {
	m.doctors = doctors
	m.hasDoctors = true
}

func (m *mockCache) InvalidateDoctors(_ context.Context) {
	m.doctors = nil
	m.hasDoctors = false
}

// mockSessions is an in-memory out.SessionStorePort.
type mockSessions struct {
	created []domain.Session
	deleted []string
	nextID  string
}

func (m *mockSessions) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	if m.nextID != "" {
		session.ID = m.nextID
	} else {
		session.ID = fmt.Sprintf("session-%d", len(m.created)+1)
	}
	m.created = append(m.created, session)
	return session, nil
}

func (m *mockSessions) Get(_ context.Context, id string) (*domain.Session, bool) {
	for i := range m.created {
		if m.created[i].ID == id {
			return &m.created[i], true
		}
	}
	return nil, false
}

func (m *mockSessions) Delete(_ context.Context, id string) {
	m.deleted = append(m.deleted, id)
}

// eventLogger signals when a named event is logged at any level, letting
// tests synchronize on code paths that have no other observable side
// effect. The signal channel must be buffered.
type eventLogger struct {
	event  string
	signal chan struct{}
}

func (l eventLogger) observe(event string) {
	if event == l.event {
		select {
		case l.signal <- struct{}{}:
		default:
		}
	}
}

func (l eventLogger) Debug(event string, _ out.LogFields)    { l.observe(event) }
func (l eventLogger) Info(event string, _ out.LogFields)     { l.observe(event) }
func (l eventLogger) Warn(event string, _ out.LogFields)     { l.observe(event) }
func (l eventLogger) Error(event string, _ out.LogFields)    { l.observe(event) }
func (l eventLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l eventLogger) WithModule(string) out.LoggerPort        { return l }

type noopLogger struct{}

func (noopLogger) Debug(string, out.LogFields)              {}
func (noopLogger) Info(string, out.LogFields)               {}
func (noopLogger) Warn(string, out.LogFields)               {}
func (noopLogger) Error(string, out.LogFields)              {}
func (l noopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l noopLogger) WithModule(string) out.LoggerPort        { return l }

func mustDate(t interface{ Fatalf(string, ...interface{}) }, str string) jsontypes.CivilDate {
	date, err := jsontypes.ParseCivilDate(str)
	if err != nil {
		t.Fatalf("parse date %q: %v", str, err)
	}
	return date
}

func mustClock(t interface{ Fatalf(string, ...interface{}) }, str string) jsontypes.ClockTime {
	clock, err := jsontypes.ParseClockTime(str)
	if err != nil {
		t.Fatalf("parse clock %q: %v", str, err)
	}
	return clock
}
