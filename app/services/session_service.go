package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/config"
	"github.com/mymenu/mymenu/pkg/metrics"
	"github.com/mymenu/mymenu/pkg/token"
)

// CookieName is the session cookie. The token inside is opaque; all state
// lives in the sessions table.
const CookieName = "auth_token"

// ErrNoSession is returned when the request carries no usable session.
var ErrNoSession = errors.New("no valid session")

// SessionService issues, resolves and revokes cookie-backed sessions.
type SessionService struct {
	sessions *repositories.SessionRepository
}

func NewSessionService(sessions *repositories.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// Issue creates a session for userID valid for the configured TTL.
func (s *SessionService) Issue(userID string) (models.Session, error) {
	session := models.Session{
		Token:     token.Session(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(config.SessionTTL()),
	}
	if err := s.sessions.Create(&session); err != nil {
		return models.Session{}, fmt.Errorf("session: create: %w", err)
	}
	metrics.SessionsIssued.Inc()
	return session, nil
}

// ResolveFromToken returns the user behind a session token. Expired rows are
// filtered here, not deleted; the sessions:prune CLI command sweeps them.
func (s *SessionService) ResolveFromToken(tok string) (models.User, error) {
	if tok == "" {
		return models.User{}, ErrNoSession
	}
	session, err := s.sessions.FindByToken(tok)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNoSession
	} else if err != nil {
		return models.User{}, fmt.Errorf("session: find: %w", err)
	}
	if !session.Valid(time.Now()) {
		return models.User{}, ErrNoSession
	}
	return session.User, nil
}

// ResolveFromRequest reads the session cookie off r and resolves it.
func (s *SessionService) ResolveFromRequest(r *http.Request) (models.User, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return models.User{}, ErrNoSession
	}
	return s.ResolveFromToken(c.Value)
}

// Revoke deletes the session row so the token is dead server-side, not just
// forgotten by the browser.
func (s *SessionService) Revoke(tok string) error {
	if tok == "" {
		return nil
	}
	return s.sessions.Delete(tok)
}

// SetCookie writes the session cookie on w.
func (s *SessionService) SetCookie(w http.ResponseWriter, session models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on w.
func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
