package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

const (
	// SearchDebounceDelay matches the autocomplete's 300ms typing pause.
	SearchDebounceDelay = 300 * time.Millisecond

	// searchMinLength is the minimum query length before any lookup fires.
	searchMinLength = 2
)

// PatientService is the admin patient-management surface: CRUD plus the
// debounced name/DNI search behind the autocomplete.
type PatientService struct {
	backend  out.MediBookPort
	logger   out.LoggerPort
	debounce *debouncer
}

func NewPatientService(backend out.MediBookPort, logger out.LoggerPort) *PatientService {
	return &PatientService{
		backend:  backend,
		logger:   logger.WithModule("PatientService"),
		debounce: newDebouncer(SearchDebounceDelay),
	}
}

func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	patients, err := s.backend.ListPatients(ctx)
	if err != nil {
		s.logger.Error("patients.list.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	return patients, nil
}

func (s *PatientService) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.backend.GetPatient(ctx, id)
}

func (s *PatientService) Create(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	if err := validatePatient(patient); err != nil {
		return nil, err
	}

	created, err := s.backend.CreatePatient(ctx, patient)
	if err != nil {
		s.logger.Error("patients.create.failed", out.LogFields{
			"email": patient.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("patients.create.success", out.LogFields{
		"patientId": created.ID,
	})
	return created, nil
}

func (s *PatientService) Update(ctx context.Context, id int64, patient domain.Patient) (*domain.Patient, error) {
	if err := validatePatient(patient); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdatePatient(ctx, id, patient)
	if err != nil {
		s.logger.Error("patients.update.failed", out.LogFields{
			"patientId": id,
			"error":     err.Error(),
		})
		return nil, err
	}

	return updated, nil
}

// Search debounces lookups per caller key (one key per UI session). Queries
// under two characters resolve immediately to an empty list; a query
// superseded during the delay returns ErrSearchSuperseded; a backend
// failure degrades to an empty list instead of an error, as the
// autocomplete always has.
func (s *PatientService) Search(ctx context.Context, callerKey, query string) ([]domain.Patient, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < searchMinLength {
		return []domain.Patient{}, nil
	}

	if err := s.debounce.Wait(ctx, callerKey); err != nil {
		return nil, err
	}

	patients, err := s.backend.SearchPatients(ctx, query)
	if err != nil {
		// Expired credentials still propagate so the session gets cleared.
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		s.logger.Warn("patients.search.failed", out.LogFields{
			"query": query,
			"error": err.Error(),
		})
		return []domain.Patient{}, nil
	}

	return patients, nil
}

func validatePatient(patient domain.Patient) error {
	if patient.FirstName == "" || patient.LastName == "" || patient.Email == "" {
		return domain.ErrPatientInvalid
	}
	return nil
}
