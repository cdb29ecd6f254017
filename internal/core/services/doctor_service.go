package services

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// DoctorService serves the doctors list, cached because every booking form
// open and every availability resolution re-reads it.
type DoctorService struct {
	backend out.MediBookPort
	cache   out.CachePort
	logger  out.LoggerPort
}

func NewDoctorService(backend out.MediBookPort, cache out.CachePort, logger out.LoggerPort) *DoctorService {
	return &DoctorService{
		backend: backend,
		cache:   cache,
		logger:  logger.WithModule("DoctorService"),
	}
}

func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	if s.cache != nil {
		if doctors, ok := s.cache.GetDoctors(ctx); ok {
			s.logger.Debug("doctors.list.cache_hit", out.LogFields{
				"count": len(doctors),
			})
			return doctors, nil
		}
	}

	doctors, err := s.backend.ListDoctors(ctx)
	if err != nil {
		s.logger.Error("doctors.list.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.StoreDoctors(ctx, doctors)
	}

	return doctors, nil
}

// ByID returns nil (not an error) for an unknown doctor: the availability
// resolver then falls back to default working hours, exactly as the booking
// form did when the doctors list had no match.
func (s *DoctorService) ByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}

	return nil, nil
}
