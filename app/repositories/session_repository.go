package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
)

// SessionRepository handles database operations for Session.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session row.
func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindByToken loads a session with its user preloaded.
func (r *SessionRepository) FindByToken(token string) (models.Session, error) {
	var session models.Session
	err := r.db.Preload("User").Where("token = ?", token).First(&session).Error
	return session, err
}

// Delete removes a session row by token. Deleting a token that does not
// exist is not an error.
func (r *SessionRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpired removes every session whose expiry is in the past.
// Called opportunistically; sessions are also checked lazily at resolve time.
func (r *SessionRepository) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.Session{}).Error
}
