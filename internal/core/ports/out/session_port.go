package out

import (
	"context"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
)

// SessionStorePort keeps the per-user session record (token, role, patient
// id) that the browser client used to spread over three local-storage keys.
type SessionStorePort interface {
	// Create stores the session and returns its generated opaque id.
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, bool)
	// Delete removes the whole record; used on logout and on any 401.
	Delete(ctx context.Context, id string)
}
