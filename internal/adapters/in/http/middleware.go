package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

const (
	// SessionHeader carries the opaque session id handed out at login.
	SessionHeader = "X-Session-Id"
	// SessionCookie is the fallback for browser consumers.
	SessionCookie = "medibook_session"

	sessionContextKey = "medibook.session"

	loginRoute = "/login"
)

// SessionGate resolves the caller's session and gates routes by role, the
// server-side counterpart of the SPA's ProtectedRoute plus the token
// interceptor.
type SessionGate struct {
	sessions out.SessionStorePort
	logger   out.LoggerPort
}

func NewSessionGate(sessions out.SessionStorePort, logger out.LoggerPort) *SessionGate {
	return &SessionGate{
		sessions: sessions,
		logger:   logger.WithModule("SessionGate"),
	}
}

// Resolve loads the session, sanity-checks the stored token's claims and
// puts both the session and the bearer token on the request context. It
// never rejects by itself; RequireAuth does.
func (g *SessionGate) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			c.Next()
			return
		}

		session, exists := g.sessions.Get(c.Request.Context(), id)
		if !exists {
			c.Next()
			return
		}

		if !g.tokenStillValid(session) {
			g.sessions.Delete(c.Request.Context(), session.ID)
			c.Next()
			return
		}

		c.Set(sessionContextKey, *session)
		c.Request = c.Request.WithContext(out.WithToken(c.Request.Context(), session.Token))
		c.Next()
	}
}

// RequireAuth rejects anonymous callers with a login redirect and, when
// roles are given, redirects a mismatched role to its own landing page
// instead of answering 403: a logged-in user on the wrong route gets sent
// where they belong.
func (g *SessionGate) RequireAuth(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := SessionFromContext(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": loginRoute,
			})
			return
		}

		if len(roles) > 0 && !roleAllowed(session.Role, roles) {
			g.logger.Info("gate.role_mismatch", out.LogFields{
				"role": session.Role,
				"path": c.Request.URL.Path,
			})
			c.Redirect(http.StatusSeeOther, session.Role.LandingRoute())
			c.Abort()
			return
		}

		c.Next()
	}
}

// RespondError translates service errors. Any unauthorized error clears the
// session, whichever request produced it, and points the caller at the
// login route. Upstream rejections keep their status and message; anything
// else is the view's generic (Spanish) failure text.
func (g *SessionGate) RespondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, domain.ErrUnauthorized) {
		if session, exists := SessionFromContext(c); exists {
			g.sessions.Delete(c.Request.Context(), session.ID)
		}
		g.logger.Warn("gate.session_expired", out.LogFields{
			"path": c.Request.URL.Path,
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "unauthorized",
			"redirect": loginRoute,
		})
		return
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		message := upstream.Message
		if message == "" {
			message = fallback
		}
		c.JSON(upstream.StatusCode, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}

func SessionFromContext(c *gin.Context) (domain.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return domain.Session{}, false
	}

	session, ok := value.(domain.Session)
	return session, ok
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

// tokenStillValid cross-checks the stored role and expiry against the JWT's
// own claims without verifying the signature; the backend remains the
// authority, this only avoids round-trips with a token known to be stale.
func (g *SessionGate) tokenStillValid(session *domain.Session) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.Token, claims); err != nil {
		// Opaque (non-JWT) tokens pass through; the backend will judge.
		return true
	}

	if err := claims.Valid(); err != nil {
		g.logger.Info("gate.token_expired", out.LogFields{})
		return false
	}

	if role, ok := claims["role"].(string); ok && domain.Role(role) != session.Role {
		g.logger.Warn("gate.role_claim_mismatch", out.LogFields{
			"stored":  session.Role,
			"claimed": role,
		})
		return false
	}

	return true
}
