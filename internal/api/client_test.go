package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)
	return client
}

func TestAuthenticateSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])
		require.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	result := client.Authenticate(context.Background(), "alice", "secret")
	require.True(t, result.Success)
	require.Empty(t, result.Error)
}

func TestAuthenticateRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "bad credentials"})
	}))

	result := client.Authenticate(context.Background(), "alice", "wrong")
	require.False(t, result.Success)
	require.Equal(t, "bad credentials", result.Error)
}

func TestAuthenticateUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	result := client.Authenticate(context.Background(), "alice", "secret")
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
}

func TestAuthenticateMalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))

	result := client.Authenticate(context.Background(), "alice", "secret")
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
}

func TestSendChatMessageSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "hola", body["message"])

		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]string{"response": "Hola, soy Molly."},
		})
	}))

	result := client.SendChatMessage(context.Background(), "hola")
	require.Empty(t, result.Error)
	require.Equal(t, "Hola, soy Molly.", result.ReplyText())
}

func TestSendChatMessageBackendError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))

	result := client.SendChatMessage(context.Background(), "hola")
	require.Equal(t, "model overloaded", result.Error)
	require.Nil(t, result.Response)
	require.Equal(t, ReplyFallback, result.ReplyText())
}

func TestSendChatMessageUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	result := client.SendChatMessage(context.Background(), "hola")
	require.Equal(t, ConnectionError, result.Error)
	require.Equal(t, ReplyFallback, result.ReplyText())
}

func TestSendChatMessageMalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	result := client.SendChatMessage(context.Background(), "hola")
	require.Equal(t, ConnectionError, result.Error)
}

func TestReplyText(t *testing.T) {
	for name, tc := range map[string]struct {
		result ChatResult
		want   string
	}{
		"nested reply":           {ChatResult{Response: &ChatPayload{Response: "hola"}}, "hola"},
		"missing response":       {ChatResult{}, ReplyFallback},
		"empty nested reply":     {ChatResult{Response: &ChatPayload{}}, ReplyFallback},
		"error beside no reply":  {ChatResult{Error: "boom"}, ReplyFallback},
		"reply wins over error":  {ChatResult{Response: &ChatPayload{Response: "hola"}, Error: "boom"}, "hola"},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.result.ReplyText())
		})
	}
}

func TestCookiesCarryAcrossCalls(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		case "/api/chat":
			cookie, err := r.Cookie("session")
			require.NoError(t, err)
			require.Equal(t, "abc123", cookie.Value)
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]string{"response": "ok"},
			})
		}
	}))

	require.True(t, client.Authenticate(context.Background(), "alice", "secret").Success)
	require.Equal(t, "ok", client.SendChatMessage(context.Background(), "hola").ReplyText())
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", time.Second)
	require.NoError(t, err)
	require.True(t, client.Authenticate(context.Background(), "alice", "secret").Success)
}
