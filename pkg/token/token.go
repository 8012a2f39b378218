// Package token generates the opaque random identifiers used for sessions,
// share links and verification codes.
//
// Tokens are drawn from a base-36 alphabet so they survive URLs, QR codes and
// cookie values unescaped. Uniqueness is not guaranteed here; the database
// enforces it with unique indexes on the columns that store tokens.
package token

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/mymenu/mymenu/config"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SessionLength is the length of session tokens. 26 base-36 characters carry
// ~134 bits of entropy.
const SessionLength = 26

// CodeLength is the length of emailed verification codes.
const CodeLength = 6

// New returns n random characters from the base-36 alphabet.
func New(n int) string {
	var b strings.Builder
	b.Grow(n)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken; nothing sensible to degrade to.
			panic("token: entropy source unavailable: " + err.Error())
		}
		b.WriteByte(alphabet[idx.Int64()])
	}

	return b.String()
}

// Session returns a new session token.
func Session() string {
	return New(SessionLength)
}

// Share returns a new share token at the configured length. The default of 9
// characters trades guessability for QR/URL brevity.
func Share() string {
	return New(config.ShareTokenLength())
}

// Code returns a new verification code, upper-cased for readability in email.
func Code() string {
	return strings.ToUpper(New(CodeLength))
}
