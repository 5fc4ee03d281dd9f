// CTMS API client
//
// Endpoint shapes follow the public CTMS OpenAPI surface: POST /token,
// PATCH /ctms/{email_id}, DELETE /ctms/{primary_email}, plus the
// platform routes (__heartbeat__, __version__).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/ctms-cli/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// CTMSService is an authenticated client for the CTMS API.
//
// Construct it once, call [CTMSService.Authenticate] once, and thread the
// value through every operation in a run. The bearer token is acquired a
// single time and never refreshed mid-run.
type CTMSService struct {
	baseURL    string
	httpClient *http.Client
	token      *oauth2.Token
}

// NewCTMSService creates a new CTMS API client.
func NewCTMSService(baseURL string, client *http.Client) *CTMSService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CTMSService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the API base URL the client was configured with.
func (s *CTMSService) BaseURL() string {
	return s.baseURL
}

// StatusError reports a non-success HTTP status from the API, carrying
// the status code and response body for caller-side branching.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return shared.ErrAPIRequest }

// Authenticate exchanges the client credentials for a bearer token via
// POST {base_url}/token (HTTP Basic auth, grant_type=client_credentials)
// and installs it on the client's transport.
//
// Any non-success token response is returned as an error; there is no
// retry, and no operation is meaningful without a token. The token is
// held in a static source, so a 401 later in the run is surfaced to the
// caller rather than triggering a refresh.
func (s *CTMSService) Authenticate(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     s.baseURL + "/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	tok, err := cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, s.httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.token = tok
	s.httpClient = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(tok),
			Base:   s.httpClient.Transport,
		},
		Timeout: s.httpClient.Timeout,
	}

	return tokenResponse(tok), nil
}

// UpdateNewsletters issues PATCH /ctms/{email_id} with the given
// newsletter states, forwarded verbatim and in order.
//
// A 404 is returned as [shared.ErrContactNotFound]; any other non-200
// status as a [StatusError].
func (s *CTMSService) UpdateNewsletters(ctx context.Context, emailID string, newsletters []NewsletterSubscription) (*PatchResponse, error) {
	if s.token == nil {
		return nil, shared.ErrNotAuthenticated
	}

	payload, err := json.Marshal(ContactPatch{Newsletters: newsletters})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.baseURL+"/ctms/"+emailID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var patched PatchResponse
		if err := json.Unmarshal(body, &patched); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &patched, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", shared.ErrContactNotFound, emailID)
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

// DeleteContact issues DELETE /ctms/{primary_email} and returns the
// identity records of every deleted contact.
//
// A 404 is returned as [shared.ErrContactNotFound]; any other non-200
// status as a [StatusError].
func (s *CTMSService) DeleteContact(ctx context.Context, primaryEmail string) ([]IdentityRecord, error) {
	if s.token == nil {
		return nil, shared.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/ctms/"+primaryEmail, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var identities []IdentityRecord
		if err := json.Unmarshal(body, &identities); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return identities, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", shared.ErrContactNotFound, primaryEmail)
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a GET request to the specified path and returns the raw
// response. Requests made after [CTMSService.Authenticate] carry the
// bearer token; the platform routes also accept anonymous calls.
func (s *CTMSService) Get(ctx context.Context, path string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Heartbeat checks GET /__heartbeat__ and reports whether the API
// considers itself healthy.
func (s *CTMSService) Heartbeat(ctx context.Context) (*APIResponse, error) {
	return s.Get(ctx, "/__heartbeat__")
}

// Version fetches GET /__version__.
func (s *CTMSService) Version(ctx context.Context) (*APIResponse, error) {
	return s.Get(ctx, "/__version__")
}

// tokenResponse reshapes an [oauth2.Token] into the wire form the token
// endpoint returned.
func tokenResponse(tok *oauth2.Token) *TokenResponse {
	resp := &TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if v, ok := tok.Extra("expires_in").(float64); ok {
		resp.ExpiresIn = int(v)
	} else if !tok.Expiry.IsZero() {
		resp.ExpiresIn = int(time.Until(tok.Expiry).Seconds())
	}
	return resp
}
