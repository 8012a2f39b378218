package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a restaurant owner. Accounts are passwordless: a row is created the
// first time an email requests a verification code, and the profile is filled
// in when the owner completes signup.
type User struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName         string     `gorm:"size:255" json:"fullName"`
	Country          string     `gorm:"size:100" json:"country"`
	VerificationCode *string    `gorm:"size:16" json:"-"`
	CodeExpiresAt    *time.Time `json:"-"`
	IsVerified       bool       `gorm:"default:false" json:"isVerified"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Session binds an opaque token to a user for SessionTTL. Expired rows are
// left in place and filtered out at read time.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	User      User      `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the session is still usable at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
