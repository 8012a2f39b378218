package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymenu/mymenu/pkg/bind"
)

type signupBody struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=10"`
}

func request(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestJSONDecodesValidBody(t *testing.T) {
	var dest signupBody
	err := bind.JSON(request(`{"email":"a@b.com","name":"Alice"}`), &dest)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", dest.Email)
}

func TestJSONRejectsMalformed(t *testing.T) {
	var dest signupBody
	err := bind.JSON(request(`{"email":`), &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONValidatesRequired(t *testing.T) {
	var dest signupBody
	err := bind.JSON(request(`{}`), &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "required")
}

func TestJSONValidatesFormat(t *testing.T) {
	var dest signupBody
	err := bind.JSON(request(`{"email":"not-an-email"}`), &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email address")
}

func TestJSONValidatesMax(t *testing.T) {
	var dest signupBody
	err := bind.JSON(request(`{"email":"a@b.com","name":"averyveryverylongname"}`), &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}
