package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// genericErrorMessage is substituted when an error response carries no
// usable "error" field.
const genericErrorMessage = "something went wrong"

// ErrUnauthenticated reports that the server rejected the credential (401).
// The gateway never navigates or touches session state itself; callers match
// with errors.Is and decide what to do.
var ErrUnauthenticated = errors.New("unauthenticated")

// RequestError is a non-2xx response translated into an error. Message is
// the server's reported "error" field, or a generic fallback when absent.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// Is lets a 401 RequestError match ErrUnauthenticated while still carrying
// the server's message for views that want to show it (login failures).
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Status == http.StatusUnauthorized
}

// Client talks to the remote go-links API. All endpoints live under the
// fixed /api prefix of the configured base URL.
type Client struct {
	base string
	http *http.Client
}

// New creates a gateway client. A nil httpClient falls back to
// http.DefaultClient; no timeout or retry policy is layered on top of
// whatever the injected client does.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/") + "/api",
		http: httpClient,
	}
}

// do issues one API call. A non-empty credential is attached as a bearer
// token; out may be nil for calls with no response body of interest.
func (c *Client) do(ctx context.Context, credential, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	message := genericErrorMessage
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}
	return &RequestError{Status: resp.StatusCode, Message: message}
}
