package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/medibook/medibook-booking-gateway/internal/config"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// CacheAdapter holds the two hot read paths: taken slots per doctor+date
// (LRU, invalidated on every mutation or broker event) and the doctors list
// (single entry with a TTL, since working hours change rarely).
type CacheAdapter struct {
	takenSlots *lru.Cache[string, []jsontypes.ClockTime]

	doctors          []domain.Doctor
	doctorsFetchedAt time.Time
	doctorsTTL       time.Duration

	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{})
		return nil, nil
	}

	takenSlots, err := lru.New[string, []jsontypes.ClockTime](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.taken_slots.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		takenSlots: takenSlots,
		doctorsTTL: cfg.Cache.DoctorsTTL,
		logger:     logger,
	}, nil
}

func slotKey(doctorID int64, date jsontypes.CivilDate) string {
	return fmt.Sprintf("%d|%s", doctorID, date)
}

func (c *CacheAdapter) GetTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) ([]jsontypes.ClockTime, bool) {
	taken, exists := c.takenSlots.Get(slotKey(doctorID, date))
	if !exists {
		return nil, false
	}

	c.logger.Debug("cache.taken_slots.hit", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})
	return taken, true
}

func (c *CacheAdapter) StoreTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate, taken []jsontypes.ClockTime) {
	c.takenSlots.Add(slotKey(doctorID, date), taken)
}

func (c *CacheAdapter) InvalidateTakenSlots(ctx context.Context, doctorID int64, date jsontypes.CivilDate) {
	c.takenSlots.Remove(slotKey(doctorID, date))
	c.logger.Debug("cache.taken_slots.invalidated", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})
}

func (c *CacheAdapter) PurgeTakenSlots(ctx context.Context) {
	c.takenSlots.Purge()
	c.logger.Debug("cache.taken_slots.purged", out.LogFields{})
}

func (c *CacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doctors == nil || time.Since(c.doctorsFetchedAt) > c.doctorsTTL {
		return nil, false
	}

	return c.doctors, true
}

func (c *CacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctors = doctors
	c.doctorsFetchedAt = time.Now()
}

func (c *CacheAdapter) InvalidateDoctors(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctors = nil
	c.doctorsFetchedAt = time.Time{}
}
