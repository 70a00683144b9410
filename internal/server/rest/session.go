package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/server/auth"
)

type sessionKey struct{}

// SessionFromContext returns the session attached by RequireSession.
func SessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*auth.Session)
	return s, ok && s != nil
}

// tokenFromRequest prefers the Authorization header over the cookie.
func (s *Server) tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(common.AuthorizationHeaderName); strings.HasPrefix(h, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireSession rejects requests without a valid session with 401. An
// expired, revoked or otherwise invalid token also clears the session
// cookie, so the client ends up with no session at all.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.tokenFromRequest(r)
		session, err := s.auth.Session(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrStoreUnavailable):
				errorJSON(w, http.StatusInternalServerError, genericFailure)
			case errors.Is(err, common.ErrUnauthenticated):
				errorJSON(w, http.StatusUnauthorized, "unauthorized")
			default:
				s.clearSessionCookie(w)
				errorJSON(w, http.StatusUnauthorized, "unauthorized")
			}
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.CookieSecure,
		Expires:  session.ExpiresAt,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.CookieSecure,
		MaxAge:   -1,
	})
}
