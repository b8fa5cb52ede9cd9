// Package api implements the HTTP client for the Molly backend. Both
// operations fold transport and decoding failures into their result
// values; callers never see a Go error cross this boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mollysec/molly/internal/debug"
)

const (
	loginPath = "/api/login"
	chatPath  = "/api/chat"
)

const (
	// ConnectionError is the error value a chat call resolves to when the
	// backend cannot be reached or answers garbage.
	ConnectionError = "Error de conexion con Molly"

	// ReplyFallback is the assistant text substituted for a malformed or
	// error-carrying chat response.
	ReplyFallback = "Error en la respuesta"
)

var log = debug.GetLogger()

// Client is a stateless wrapper over the backend's two operations. The
// cookie jar carries the backend's session cookie across calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base address.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// AuthResult is the outcome of an authentication attempt.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Authenticate verifies credentials against POST /api/login. Failures of
// any kind resolve to an unsuccessful result.
func (c *Client) Authenticate(ctx context.Context, username, password string) AuthResult {
	request := map[string]string{"username": username, "password": password}
	var result AuthResult
	if err := c.post(ctx, loginPath, request, &result); err != nil {
		log.Warn("login request failed", "error", err)
		return AuthResult{Success: false, Error: err.Error()}
	}
	return result
}

// ChatPayload is the nested reply object of a successful chat response.
type ChatPayload struct {
	Response string `json:"response"`
}

// ChatResult is the outcome of a chat turn: either a nested reply or an
// error string, mirroring the backend's wire shape.
type ChatResult struct {
	Response *ChatPayload `json:"response,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// ReplyText extracts the assistant's reply. Extraction is total: any
// missing or empty field yields the fixed fallback text.
func (r ChatResult) ReplyText() string {
	if r.Response != nil && r.Response.Response != "" {
		return r.Response.Response
	}
	return ReplyFallback
}

// SendChatMessage submits one user message to POST /api/chat. Transport
// and decoding failures resolve to a connection-error result.
func (c *Client) SendChatMessage(ctx context.Context, message string) ChatResult {
	request := map[string]string{"message": message}
	var result ChatResult
	if err := c.post(ctx, chatPath, request, &result); err != nil {
		log.Warn("chat request failed", "error", err)
		return ChatResult{Error: ConnectionError}
	}
	return result
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshaling request")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
