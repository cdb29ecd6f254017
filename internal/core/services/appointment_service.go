package services

import (
	"context"
	"fmt"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/in"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// AppointmentService is the admin/patient appointment surface. Mutations
// never patch local state: each one is followed by a full re-list from the
// backend, and that authoritative list is what callers get back.
type AppointmentService struct {
	backend out.MediBookPort
	cache   out.CachePort
	logger  out.LoggerPort
}

func NewAppointmentService(backend out.MediBookPort, cache out.CachePort, logger out.LoggerPort) *AppointmentService {
	return &AppointmentService{
		backend: backend,
		cache:   cache,
		logger:  logger.WithModule("AppointmentService"),
	}
}

func (s *AppointmentService) List(ctx context.Context) ([]in.AppointmentView, error) {
	appointments, err := s.backend.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("appointments.list.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	return toViews(appointments), nil
}

func (s *AppointmentService) Mine(ctx context.Context) ([]in.AppointmentView, error) {
	appointments, err := s.backend.MyAppointments(ctx)
	if err != nil {
		s.logger.Error("appointments.mine.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	return toViews(appointments), nil
}

func (s *AppointmentService) History(ctx context.Context, patientEmail string) ([]in.AppointmentView, error) {
	appointments, err := s.backend.PatientHistory(ctx, patientEmail)
	if err != nil {
		s.logger.Error("appointments.history.fetch_failed", out.LogFields{
			"patientEmail": patientEmail,
			"error":        err.Error(),
		})
		return nil, err
	}
	return toViews(appointments), nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) ([]in.AppointmentView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown appointment status %q", status)
	}

	s.logger.Info("appointments.status.update", out.LogFields{
		"appointmentId": id,
		"status":        status,
	})

	if err := s.backend.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("appointments.status.update_failed", out.LogFields{
			"appointmentId": id,
			"status":        status,
			"error":         err.Error(),
		})
		return nil, err
	}

	// A cancellation frees a slot, a completion may not, but the cache has
	// no doctor+date key for this appointment: purge and re-read.
	if s.cache != nil {
		s.cache.PurgeTakenSlots(ctx)
	}

	return s.List(ctx)
}

func (s *AppointmentService) SaveDiagnosis(ctx context.Context, id int64, diagnosis, treatment string) ([]in.AppointmentView, error) {
	if diagnosis == "" || treatment == "" {
		return nil, fmt.Errorf("diagnosis and treatment are required")
	}

	s.logger.Info("appointments.diagnosis.save", out.LogFields{
		"appointmentId": id,
	})

	if err := s.backend.SaveDiagnosis(ctx, id, diagnosis, treatment); err != nil {
		s.logger.Error("appointments.diagnosis.save_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return nil, err
	}

	return s.List(ctx)
}

// Prescription downloads the PDF for a completed appointment. The status
// gate re-reads the list first: prescriptions are only offered, and only
// served, for COMPLETED.
func (s *AppointmentService) Prescription(ctx context.Context, id int64) ([]byte, error) {
	appointments, err := s.backend.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.Appointment
	for i := range appointments {
		if appointments[i].ID == id {
			found = &appointments[i]
			break
		}
	}

	if found == nil || found.Status != domain.AppointmentStatusCompleted {
		s.logger.Warn("appointments.prescription.unavailable", out.LogFields{
			"appointmentId": id,
		})
		return nil, domain.ErrPrescriptionUnavailable
	}

	return s.backend.PrescriptionPDF(ctx, id)
}

func toViews(appointments []domain.Appointment) []in.AppointmentView {
	views := make([]in.AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, in.AppointmentView{
			Appointment: a,
			Actions:     a.OfferedActions(),
		})
	}
	return views
}
