// Package appauth turns a GitHub App's private key and installation id into
// a short-lived installation access token, without going through a GitHub
// API client library.
package appauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// assertionTTL is the validity window GitHub allows for app JWTs.
const assertionTTL = 10 * time.Minute

var timeNow = time.Now

// NewAssertion signs an RS256 JWT proving possession of the app's private
// key. GitHub accepts it as a bearer credential for app-level endpoints
// until it expires, assertionTTL from now. The key must be an RSA private
// key in PEM form, as downloaded from the app settings page.
func NewAssertion(keyPEM []byte, appID string) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		return "", &KeyFormatError{Err: err}
	}

	now := timeNow().UTC()
	if now.Unix() <= 0 {
		return "", &ClockError{Now: now.Unix()}
	}

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
		Issuer:    appID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", &SigningError{Err: err}
	}
	return signed, nil
}
