package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/repositories"
	"github.com/mymenu/mymenu/config"
	"github.com/mymenu/mymenu/pkg/cache"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/mail"
	"github.com/mymenu/mymenu/pkg/metrics"
	"github.com/mymenu/mymenu/pkg/token"
)

// Notifier delivers a verification code to its recipient. Production uses
// SMTP; tests plug in a recorder.
type Notifier interface {
	SendVerificationCode(email, code string) error
}

// SMTPNotifier sends verification codes through pkg/mail.
type SMTPNotifier struct{}

func (SMTPNotifier) SendVerificationCode(email, code string) error {
	return mail.To(email).
		Subject("Your MyMenu verification code").
		Body(fmt.Sprintf(
			"<p>Your verification code is:</p><h1>%s</h1><p>It expires in %d minutes.</p>",
			code, int(config.CodeTTL().Minutes()),
		)).
		Send()
}

// VerificationService implements the passwordless email-code flow.
type VerificationService struct {
	users    *repositories.UserRepository
	notifier Notifier
}

func NewVerificationService(users *repositories.UserRepository, notifier Notifier) *VerificationService {
	return &VerificationService{users: users, notifier: notifier}
}

// RequestCode generates a fresh code for email, creating the user row on
// first contact, and returns the upserted user. Repeat requests inside the
// resend window are rejected.
//
// Delivery failure is logged but does not roll back the stored code: the
// owner can retry after the window without invalidating anything.
func (s *VerificationService) RequestCode(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !cache.Acquire("verify:resend:"+email, config.ResendWindow()) {
		return models.User{}, ErrTooManyRequests
	}

	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email}
		if err := s.users.Create(&user); err != nil {
			return models.User{}, fmt.Errorf("verification: create user: %w", err)
		}
	} else if err != nil {
		return models.User{}, fmt.Errorf("verification: find user: %w", err)
	}

	code := token.Code()
	expiresAt := time.Now().Add(config.CodeTTL())
	user.VerificationCode = &code
	user.CodeExpiresAt = &expiresAt
	if err := s.users.Save(&user); err != nil {
		return models.User{}, fmt.Errorf("verification: store code: %w", err)
	}

	if err := s.notifier.SendVerificationCode(email, code); err != nil {
		metrics.CodesSent.WithLabelValues("failed").Inc()
		logger.Error("verification: code delivery failed", "email", email, "error", err)
		return user, nil
	}
	metrics.CodesSent.WithLabelValues("ok").Inc()
	return user, nil
}

// VerifyCode checks the submitted code against the stored one. Matching is
// exact and case-sensitive. With both profile fields present the profile is
// saved, the account is marked verified, and the code is consumed; without
// them verification succeeds but the code stays usable, so the signup form
// can verify first and complete the profile in a second call.
func (s *VerificationService) VerifyCode(email, code, fullName, country string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidCode
	} else if err != nil {
		return models.User{}, fmt.Errorf("verification: find user: %w", err)
	}

	if user.VerificationCode == nil || *user.VerificationCode != strings.TrimSpace(code) {
		return models.User{}, ErrInvalidCode
	}
	if user.CodeExpiresAt == nil || time.Now().After(*user.CodeExpiresAt) {
		return models.User{}, ErrInvalidCode
	}

	if fullName == "" || country == "" {
		return user, nil
	}

	user.VerificationCode = nil
	user.CodeExpiresAt = nil
	user.IsVerified = true
	user.FullName = fullName
	user.Country = country
	if err := s.users.Save(&user); err != nil {
		return models.User{}, fmt.Errorf("verification: consume code: %w", err)
	}
	return user, nil
}
