package services

import (
	"context"
	"sync"
	"time"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
)

// debouncer delays work per key and lets a newer request for the same key
// cancel the pending one, the server-side shape of the autocomplete's
// setTimeout/clearTimeout discipline.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	pending map[string]chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]chan struct{}),
	}
}

// Wait blocks for the debounce delay. It returns ErrSearchSuperseded if a
// later Wait for the same key arrived before the delay elapsed, and nil
// once the caller holds the most recent request and may proceed.
func (d *debouncer) Wait(ctx context.Context, key string) error {
	d.mu.Lock()
	if superseded, exists := d.pending[key]; exists {
		close(superseded)
	}
	cancel := make(chan struct{})
	d.pending[key] = cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		d.mu.Lock()
		if d.pending[key] == cancel {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		return nil
	case <-cancel:
		return domain.ErrSearchSuperseded
	case <-ctx.Done():
		d.mu.Lock()
		if d.pending[key] == cancel {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		return ctx.Err()
	}
}
