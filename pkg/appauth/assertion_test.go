package appauth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRSAKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return key, keyPEM
}

func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })
}

func TestNewAssertionClaims(t *testing.T) {
	key, keyPEM := testRSAKey(t)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pinClock(t, now)

	signed, err := NewAssertion(keyPEM, "12345")
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "12345", claims.Issuer)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Unix()+600, claims.ExpiresAt.Unix())
}

func TestNewAssertionDeterministicClaims(t *testing.T) {
	_, keyPEM := testRSAKey(t)
	pinClock(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := NewAssertion(keyPEM, "12345")
	require.NoError(t, err)
	second, err := NewAssertion(keyPEM, "12345")
	require.NoError(t, err)

	// same clock reading, same header and claims segments
	assert.Equal(t, strings.SplitN(first, ".", 3)[:2], strings.SplitN(second, ".", 3)[:2])
}

func TestNewAssertionBadKey(t *testing.T) {
	var keyErr *KeyFormatError

	_, err := NewAssertion(nil, "12345")
	require.ErrorAs(t, err, &keyErr)

	_, err = NewAssertion([]byte("not a pem block"), "12345")
	require.ErrorAs(t, err, &keyErr)
}

func TestNewAssertionECKey(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})

	_, err = NewAssertion(keyPEM, "12345")
	var keyErr *KeyFormatError
	require.ErrorAs(t, err, &keyErr)
}

func TestNewAssertionClockBeforeEpoch(t *testing.T) {
	_, keyPEM := testRSAKey(t)
	pinClock(t, time.Unix(-1000, 0))

	_, err := NewAssertion(keyPEM, "12345")
	var clockErr *ClockError
	require.ErrorAs(t, err, &clockErr)
}
