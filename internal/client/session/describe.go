package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Description is what can be read from a token without the signing key.
type Description struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (d Description) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && now.After(d.ExpiresAt)
}

// Describe inspects a token for display. Tokens are opaque to the client, so
// only JWTs yield anything; ok is false for every other shape. The signature
// is not verified and the result must never decide validity, the backend
// does that.
func Describe(token string) (Description, bool) {
	if token == "" {
		return Description{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Description{}, false
	}

	var d Description
	d.Subject = claims.Subject
	if claims.IssuedAt != nil {
		d.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		d.ExpiresAt = claims.ExpiresAt.Time
	}
	return d, true
}
