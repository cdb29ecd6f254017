package out

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

// CachePort caches upstream reads that the booking flow hits repeatedly:
// the doctors list and taken slots per doctor+date. A nil CachePort means
// caching is disabled; services must treat every lookup as a miss.
type CachePort interface {
	GetTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, bool)
	StoreTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate, taken []jsontypes.ClockTime)
	InvalidateTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate)
	// PurgeTakenSlots drops every cached taken set. Status mutations only
	// know the appointment id, not its doctor+date, so they purge wholesale.
	PurgeTakenSlots(ctx context.Context)

	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)
	InvalidateDoctors(ctx context.Context)
}
