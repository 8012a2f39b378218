package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mymenu/mymenu/pkg/token"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func TestNewLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{1, 9, 26, 64} {
		got := token.New(n)
		assert.Len(t, got, n)
		for _, r := range got {
			assert.Contains(t, alphabet, string(r))
		}
	}
}

func TestNewZero(t *testing.T) {
	assert.Equal(t, "", token.New(0))
}

func TestSessionLength(t *testing.T) {
	assert.Len(t, token.Session(), token.SessionLength)
}

func TestShareDefaultLength(t *testing.T) {
	// SHARE_TOKEN_LENGTH defaults to 9.
	assert.Len(t, token.Share(), 9)
}

func TestCodeIsUppercase(t *testing.T) {
	code := token.Code()
	assert.Len(t, code, token.CodeLength)
	assert.Equal(t, strings.ToUpper(code), code)
	for _, r := range code {
		assert.Contains(t, strings.ToUpper(alphabet), string(r))
	}
}

func TestTokensDiffer(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := token.Session()
		assert.False(t, seen[tok], "duplicate session token generated")
		seen[tok] = true
	}
}
