package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// BookingService runs a patient's booking submission: weekday gate, slot
// membership check against the resolved availability, timestamp composition
// and the upstream book-me call.
type BookingService struct {
	backend      out.MediBookPort
	cache        out.CachePort
	availability *AvailabilityService
	logger       out.LoggerPort

	mu       sync.Mutex
	inFlight map[string]*bookingCall
}

// bookingCall coalesces identical submissions racing in the window before a
// UI manages to disable its submit control: the duplicates wait for the
// first call's outcome instead of reaching the backend.
type bookingCall struct {
	done        chan struct{}
	appointment *domain.Appointment
	err         error
}

func NewBookingService(
	backend out.MediBookPort,
	cache out.CachePort,
	availability *AvailabilityService,
	logger out.LoggerPort,
) *BookingService {
	return &BookingService{
		backend:      backend,
		cache:        cache,
		availability: availability,
		logger:       logger.WithModule("BookingService"),
		inFlight:     make(map[string]*bookingCall),
	}
}

func (s *BookingService) Book(ctx context.Context, session domain.Session, req domain.BookingRequest) (*domain.Appointment, error) {
	if req.Date.IsWeekend() {
		s.logger.Info("booking.rejected.weekend", out.LogFields{
			"patientId": session.PatientID,
			"date":      req.Date.String(),
		})
		return nil, domain.ErrWeekendDate
	}

	key := fmt.Sprintf("%d|%d|%s|%s", session.PatientID, req.DoctorID, req.Date, req.Time)

	s.mu.Lock()
	if call, exists := s.inFlight[key]; exists {
		s.mu.Unlock()
		s.logger.Warn("booking.duplicate.coalesced", out.LogFields{
			"patientId": session.PatientID,
			"doctorId":  req.DoctorID,
		})
		select {
		case <-call.done:
			return call.appointment, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &bookingCall{done: make(chan struct{})}
	s.inFlight[key] = call
	s.mu.Unlock()

	call.appointment, call.err = s.book(ctx, session, req)
	close(call.done)

	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()

	return call.appointment, call.err
}

func (s *BookingService) book(ctx context.Context, session domain.Session, req domain.BookingRequest) (*domain.Appointment, error) {
	available, err := s.availability.Contains(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		// Availability could not be resolved; submit anyway and let the
		// backend arbitrate, the same race it arbitrates for everyone else.
		s.logger.Warn("booking.availability.unresolved", out.LogFields{
			"doctorId": req.DoctorID,
			"date":     req.Date.String(),
			"error":    err.Error(),
		})
	} else if !available {
		s.logger.Info("booking.rejected.slot_taken", out.LogFields{
			"doctorId": req.DoctorID,
			"date":     req.Date.String(),
			"time":     req.Time.String(),
		})
		return nil, domain.ErrSlotTaken
	}

	idempotencyKey := uuid.NewString()
	dateTime := jsontypes.Combine(req.Date, req.Time)

	s.logger.Info("booking.submit", out.LogFields{
		"patientId":      session.PatientID,
		"doctorId":       req.DoctorID,
		"dateTime":       dateTime.String(),
		"idempotencyKey": idempotencyKey,
	})

	appointment, err := s.backend.BookMe(ctx, out.BookRequest{
		DoctorID: req.DoctorID,
		DateTime: dateTime,
	}, idempotencyKey)
	if err != nil {
		s.logger.Error("booking.submit.failed", out.LogFields{
			"patientId": session.PatientID,
			"doctorId":  req.DoctorID,
			"error":     err.Error(),
		})
		return nil, err
	}

	// The slot just stopped being free; drop the cached taken set so the
	// next availability read hits the backend.
	if s.cache != nil {
		s.cache.InvalidateTakenSlots(ctx, req.DoctorID, req.Date)
	}

	s.logger.Info("booking.submit.success", out.LogFields{
		"patientId":     session.PatientID,
		"appointmentId": appointment.ID,
	})

	return appointment, nil
}
