package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/services"
)

func TestAuthFlow(t *testing.T) {
	h, db := setupAPI(t)

	// Request a code. SMTP is not configured in tests, so delivery fails
	// and is logged, but the code is stored and the request succeeds.
	w := do(t, h, http.MethodPost, "/api/auth/send-code",
		map[string]string{"email": "alice@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	require.NotNil(t, user.VerificationCode)

	// The response names the upserted user.
	var sent struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	decode(t, w, &sent)
	assert.Equal(t, user.ID, sent.UserID)

	// A wrong code fails authentication, not validation.
	w = do(t, h, http.MethodPost, "/api/auth/verify", map[string]string{
		"email": "alice@example.com", "code": "NOPE00",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Right code with profile completes signup and sets the cookie.
	w = do(t, h, http.MethodPost, "/api/auth/verify", map[string]string{
		"email":    "alice@example.com",
		"code":     *user.VerificationCode,
		"fullName": "Alice",
		"country":  "IN",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var verified struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	decode(t, w, &verified)
	assert.Equal(t, user.ID, verified.UserID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, services.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	// The cookie authenticates /auth/me.
	w = do(t, h, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User models.User `json:"user"`
	}
	decode(t, w, &me)
	assert.Equal(t, "alice@example.com", me.User.Email)
	assert.True(t, me.User.IsVerified)

	// Logout clears the cookie and revokes the session server-side.
	w = do(t, h, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendCodeValidatesEmail(t *testing.T) {
	h, _ := setupAPI(t)

	w := do(t, h, http.MethodPost, "/api/auth/send-code",
		map[string]string{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/auth/send-code", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeReportsSessionStoreFailure(t *testing.T) {
	h, db := setupAPI(t)
	_, cookie := loginAs(t, db, "alice@example.com")

	// With the sessions table gone the lookup fails outright; that is a
	// server fault, not a missing session.
	require.NoError(t, db.Migrator().DropTable(&models.Session{}))

	w := do(t, h, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVerifyMissingCodeIsBadRequest(t *testing.T) {
	h, _ := setupAPI(t)

	// 400 is reserved for malformed requests; a wrong code is a 401.
	w := do(t, h, http.MethodPost, "/api/auth/verify",
		map[string]string{"email": "alice@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeRequiresSession(t *testing.T) {
	h, _ := setupAPI(t)

	w := do(t, h, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	assert.Equal(t, "Not authenticated", body.Error)
}
