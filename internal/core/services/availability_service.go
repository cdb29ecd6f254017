package services

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// AvailabilityService resolves the bookable slot set for a doctor+date:
// the doctor's working-hours generation minus whatever the backend reports
// as already taken.
type AvailabilityService struct {
	backend out.MediBookPort
	cache   out.CachePort
	doctors *DoctorService
	logger  out.LoggerPort
}

func NewAvailabilityService(
	backend out.MediBookPort,
	cache out.CachePort,
	doctors *DoctorService,
	logger out.LoggerPort,
) *AvailabilityService {
	return &AvailabilityService{
		backend: backend,
		cache:   cache,
		doctors: doctors,
		logger:  logger.WithModule("AvailabilityService"),
	}
}

// AvailableSlots returns the candidate set minus taken slots, in
// chronological order. A failed taken-slots fetch is returned as an error:
// the fail-open fallback is the caller's policy, not hidden in here.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error) {
	taken, err := s.takenSlots(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("availability.taken_slots.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	start, end := s.workingHours(ctx, doctorID)
	candidates := GenerateTimeSlots(start, end)

	takenSet := make(map[jsontypes.ClockTime]struct{}, len(taken))
	for _, t := range taken {
		takenSet[t] = struct{}{}
	}

	available := make([]jsontypes.ClockTime, 0, len(candidates))
	for _, slot := range candidates {
		if _, occupied := takenSet[slot]; !occupied {
			available = append(available, slot)
		}
	}

	s.logger.Debug("availability.resolved", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.String(),
		"candidates": len(candidates),
		"taken":      len(taken),
		"available":  len(available),
	})

	return available, nil
}

// DefaultDaySlots is the full 09:00-18:00 generation. Callers that decide
// to fail open when the backend is unreachable present this set.
func (s *AvailabilityService) DefaultDaySlots() []jsontypes.ClockTime {
	return GenerateTimeSlots(domain.DefaultWorkStart, domain.DefaultWorkEnd)
}

// Contains reports whether slot is in the resolved available set; the
// booking flow enforces this before submitting.
func (s *AvailabilityService) Contains(ctx context.Context, doctorID int64, date jsontypes.CivilDate, slot jsontypes.ClockTime) (bool, error) {
	available, err := s.AvailableSlots(ctx, doctorID, date)
	if err != nil {
		return false, err
	}

	for _, candidate := range available {
		if candidate == slot {
			return true, nil
		}
	}

	return false, nil
}

func (s *AvailabilityService) takenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, error) {
	if s.cache != nil {
		if taken, ok := s.cache.GetTakenSlots(ctx, doctorID, date); ok {
			s.logger.Debug("availability.taken_slots.cache_hit", out.LogFields{
				"doctorId": doctorID,
				"date":     date.String(),
			})
			return taken, nil
		}
	}

	taken, err := s.backend.TakenSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.StoreTakenSlots(ctx, doctorID, date, taken)
	}

	return taken, nil
}

// workingHours prefers the doctor's configured bounds. An unknown doctor or
// a failed doctors read falls back to the default business day; hours are
// cosmetic next to taken slots, which stay authoritative.
func (s *AvailabilityService) workingHours(ctx context.Context, doctorID int64) (jsontypes.ClockTime, jsontypes.ClockTime) {
	doctor, err := s.doctors.ByID(ctx, doctorID)
	if err != nil {
		s.logger.Warn("availability.doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return domain.DefaultWorkStart, domain.DefaultWorkEnd
	}
	if doctor == nil {
		return domain.DefaultWorkStart, domain.DefaultWorkEnd
	}

	return doctor.WorkingHours()
}
