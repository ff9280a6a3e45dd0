// Package e2e drives a running tempus server over HTTP with godog.
//
// The suite is opt-in: it only runs when TEMPUS_E2E_BASE_URL points at a
// live server. TEMPUS_E2E_ADMIN_TOKEN must match the server's deploy
// token for the admin scenarios.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestContext carries per-scenario HTTP state: the last response, every
// status seen so far, and the tokens the admin scenarios mint.
type TestContext struct {
	baseURL    string
	adminToken string
	client     *http.Client

	serviceToken string
	lastStatus   int
	lastBody     []byte
	statuses     []int
}

// NewTestContext builds a context for one scenario.
func NewTestContext(baseURL, adminToken string) *TestContext {
	return &TestContext{
		baseURL:    baseURL,
		adminToken: adminToken,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// POST sends a JSON body without extra headers.
func (tc *TestContext) POST(path string, body any) error {
	return tc.DoJSON(http.MethodPost, path, body, nil)
}

// GET sends a GET with optional headers.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.DoJSON(http.MethodGet, path, nil, headers)
}

// DoJSON sends one request and records its status and body.
func (tc *TestContext) DoJSON(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.statuses = append(tc.statuses, resp.StatusCode)
	return nil
}

// GetResponseField reads one top-level field from the last JSON body.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var decoded map[string]any
	if err := json.Unmarshal(tc.lastBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", string(tc.lastBody), err)
	}
	value, ok := decoded[field]
	if !ok {
		return nil, fmt.Errorf("response has no field %q: %s", field, string(tc.lastBody))
	}
	return value, nil
}

// GetLastResponseStatus returns the status of the most recent request.
func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

// GetLastResponseBody returns the body of the most recent request.
func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// Statuses returns every status code seen in this scenario, in order.
func (tc *TestContext) Statuses() []int {
	return tc.statuses
}

// AdminToken returns the deploy token for minting service tokens.
func (tc *TestContext) AdminToken() string {
	return tc.adminToken
}

// ServiceToken returns the minted bearer token, if any.
func (tc *TestContext) ServiceToken() string {
	return tc.serviceToken
}

// SetServiceToken stores a minted bearer token for later steps.
func (tc *TestContext) SetServiceToken(token string) {
	tc.serviceToken = token
}
