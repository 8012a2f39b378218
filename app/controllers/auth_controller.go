package controllers

import (
	"errors"
	"net/http"

	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/bind"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/response"
)

// AuthController serves the passwordless signup/login flow.
type AuthController struct {
	verification *services.VerificationService
	sessions     *services.SessionService
}

func NewAuthController(verification *services.VerificationService, sessions *services.SessionService) *AuthController {
	return &AuthController{verification: verification, sessions: sessions}
}

// SendCode handles POST /api/auth/send-code.
func (c *AuthController) SendCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := c.verification.RequestCode(body.Email)
	if errors.Is(err, services.ErrTooManyRequests) {
		response.Error(w, http.StatusTooManyRequests, "Please wait before requesting another code")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("send code failed", "error", err)
		response.Internal(w, "Failed to send verification code")
		return
	}
	response.OK(w, map[string]string{
		"message": "Verification code sent",
		"userId":  user.ID,
	})
}

// Verify handles POST /api/auth/verify. On a correct code it issues a
// session and sets the cookie; fullName and country are optional and, when
// both present, complete the profile.
func (c *AuthController) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Code     string `json:"code" validate:"required"`
		FullName string `json:"fullName"`
		Country  string `json:"country"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := c.verification.VerifyCode(body.Email, body.Code, body.FullName, body.Country)
	if errors.Is(err, services.ErrInvalidCode) {
		// A wrong code is an authentication failure, not a malformed request.
		response.Error(w, http.StatusUnauthorized, "Invalid or expired verification code")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("verify failed", "error", err)
		response.Internal(w, "Failed to verify code")
		return
	}

	session, err := c.sessions.Issue(user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("session issue failed", "error", err)
		response.Internal(w, "Failed to create session")
		return
	}
	c.sessions.SetCookie(w, session)
	response.OK(w, map[string]string{
		"message": "Verified",
		"userId":  user.ID,
	})
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}
	response.OK(w, map[string]interface{}{"user": user})
}

// Logout handles POST /api/auth/logout. The server-side session row is
// revoked, not just the cookie; a captured token is dead afterwards.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(services.CookieName); err == nil {
		if err := c.sessions.Revoke(cookie.Value); err != nil {
			logger.WithCtx(r.Context()).Error("session revoke failed", "error", err)
		}
	}
	c.sessions.ClearCookie(w)
	response.Message(w, "Logged out")
}
