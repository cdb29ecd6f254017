package services

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// AuthService exchanges backend credentials for a gateway session. The
// token, role and patient id the backend returns live in one session record
// from here on.
type AuthService struct {
	backend  out.MediBookPort
	sessions out.SessionStorePort
	logger   out.LoggerPort
}

func NewAuthService(backend out.MediBookPort, sessions out.SessionStorePort, logger out.LoggerPort) *AuthService {
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		logger:   logger.WithModule("AuthService"),
	}
}

func (s *AuthService) Login(ctx context.Context, creds out.Credentials) (*domain.Session, error) {
	result, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.logger.Warn("auth.login.failed", out.LogFields{
			"email": creds.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	session, err := s.sessions.Create(ctx, domain.Session{
		Token:     result.Token,
		Role:      result.Role,
		PatientID: result.PatientID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("auth.login.success", out.LogFields{
		"email": creds.Email,
		"role":  result.Role,
	})

	return &session, nil
}

func (s *AuthService) Register(ctx context.Context, req out.RegisterRequest) error {
	if err := s.backend.Register(ctx, req); err != nil {
		s.logger.Warn("auth.register.failed", out.LogFields{
			"email": req.Email,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("auth.register.success", out.LogFields{
		"email": req.Email,
	})
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(ctx, sessionID)
	s.logger.Info("auth.logout", out.LogFields{})
}
