package appauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	userAgent         = "github-app-token"
	acceptHeader      = "application/vnd.github.v3+json"
)

// InstallationToken is the credential GitHub returns for an installation.
// ExpiresAt is kept verbatim as the timestamp string GitHub sent.
type InstallationToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Exchanger trades a signed app assertion for an installation token. The
// zero value talks to api.github.com with http.DefaultClient.
type Exchanger struct {
	// APIBaseURL overrides the API endpoint, for GitHub Enterprise Server.
	APIBaseURL string
	Client     *http.Client
}

// Exchange POSTs the assertion to the installation's access_tokens endpoint
// and parses the resulting credential. One request, no retries; the caller's
// context is the only cancellation mechanism.
func (e *Exchanger) Exchange(ctx context.Context, assertion string, installationID string) (*InstallationToken, error) {
	base := e.APIBaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}
	url := fmt.Sprintf("%s/app/installations/%s/access_tokens", base, installationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Bearer "+assertion)

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRejectionError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// the real response carries permissions and repository fields as well;
	// only the credential pair matters here
	var token InstallationToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &ResponseParseError{Err: err}
	}
	if token.Token == "" {
		return nil, &ResponseParseError{Err: errors.New("response missing token")}
	}
	if token.ExpiresAt == "" {
		return nil, &ResponseParseError{Err: errors.New("response missing expires_at")}
	}
	return &token, nil
}

// FetchToken builds the app assertion and exchanges it in one step.
func (e *Exchanger) FetchToken(ctx context.Context, keyPEM []byte, appID string, installationID string) (*InstallationToken, error) {
	assertion, err := NewAssertion(keyPEM, appID)
	if err != nil {
		return nil, err
	}
	return e.Exchange(ctx, assertion, installationID)
}
