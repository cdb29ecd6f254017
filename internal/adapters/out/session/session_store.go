package session

import (
	"context"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/medibook/medibook-booking-gateway/internal/config"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// Store keeps sessions in an expirable LRU: evicted or expired entries just
// force a fresh login, the same behavior as a cleared browser storage.
type Store struct {
	sessions *lru.LRU[string, domain.Session]
	logger   out.LoggerPort
}

func NewStore(cfg *config.Config, logger out.LoggerPort) *Store {
	return &Store{
		sessions: lru.NewLRU[string, domain.Session](cfg.Session.Size, nil, cfg.Session.TTL),
		logger:   logger,
	}
}

func (s *Store) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.ID = uuid.NewString()
	s.sessions.Add(session.ID, session)

	s.logger.Debug("session.created", out.LogFields{
		"role": session.Role,
	})
	return session, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Session, bool) {
	session, exists := s.sessions.Get(id)
	if !exists {
		return nil, false
	}
	return &session, true
}

func (s *Store) Delete(ctx context.Context, id string) {
	s.sessions.Remove(id)
	s.logger.Debug("session.deleted", out.LogFields{})
}
