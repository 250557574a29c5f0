package appauth

import "fmt"

// KeyFormatError means the key material could not be parsed as an RSA
// private key in PEM form.
type KeyFormatError struct {
	Err error
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid private key: %s", e.Err)
}

func (e *KeyFormatError) Unwrap() error { return e.Err }

// ClockError means the system clock returned a time the assertion claims
// cannot represent.
type ClockError struct {
	Now int64
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("system clock out of range: %d", e.Now)
}

// SigningError means the RS256 signature computation failed.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("sign assertion: %s", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// TransportError means the token request never produced a usable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("token request: %s", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteRejectionError is a non-2xx answer from the API. Body carries the
// response text verbatim, which is usually the only diagnostic GitHub gives
// (bad installation id, expired assertion, missing permissions).
type RemoteRejectionError struct {
	StatusCode int
	Body       string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("github api returned %d: %s", e.StatusCode, e.Body)
}

// ResponseParseError means a successful response did not carry the expected
// token payload.
type ResponseParseError struct {
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parse token response: %s", e.Err)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }
