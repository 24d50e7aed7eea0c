package together

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

type capturedRequest struct {
	Path  string
	Auth  string
	Model string `json:"model"`

	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{APIKey: "tg-key", BaseURL: ts.URL + "/v1", Timeout: 2 * time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{APIKey: "  "}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestCompleteChat_Success(t *testing.T) {
	var got capturedRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Walk daily"}, "finish_reason": "stop"},
				{"index": 1, "message": {"role": "assistant", "content": "ignored"}, "finish_reason": "stop"}
			]
		}`))
	})

	out, err := c.CompleteChat(context.Background(), inference.ChatRequest{
		Model: "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free",
		Messages: []inference.Message{
			{Role: inference.RoleUser, Content: "tips please"},
		},
		MaxTokens: 150,
	})
	require.NoError(t, err)
	require.Equal(t, "Walk daily", out)

	require.Equal(t, "/v1/chat/completions", got.Path)
	require.Equal(t, "Bearer tg-key", got.Auth)
	require.Equal(t, "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free", got.Model)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
	require.Equal(t, "tips please", got.Messages[0].Content)
	require.Equal(t, 150, got.MaxTokens)
}

func TestCompleteChat_NoChoicesReturnsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	})

	out, err := c.CompleteChat(context.Background(), inference.ChatRequest{Model: "m"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCompleteChat_Non2xxWithPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.CompleteChat(context.Background(), inference.ChatRequest{Model: "m"})

	var uerr *inference.UpstreamError
	require.True(t, errors.As(err, &uerr))
	require.ErrorIs(t, err, inference.ErrBadStatus)
	require.Equal(t, http.StatusBadGateway, uerr.StatusCode)
	require.Contains(t, uerr.Body, "bad gateway")
}

func TestCompleteChat_Non2xxWithJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error","code":"bad_key"}}`))
	})

	_, err := c.CompleteChat(context.Background(), inference.ChatRequest{Model: "m"})

	var uerr *inference.UpstreamError
	require.True(t, errors.As(err, &uerr))
	require.ErrorIs(t, err, inference.ErrBadStatus)
	require.Equal(t, http.StatusUnauthorized, uerr.StatusCode)
	require.JSONEq(t, `{"error":{"message":"invalid api key","type":"invalid_request_error","code":"bad_key"}}`, uerr.Body)
}

func TestCompleteChat_UndecodableSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json at all`))
	})

	_, err := c.CompleteChat(context.Background(), inference.ChatRequest{Model: "m"})
	require.ErrorIs(t, err, inference.ErrInvalidJSON)
	require.ErrorIs(t, err, inference.ErrMalformedResponse)
}

func TestCompleteChat_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: base, Timeout: time.Second}, nil)
	require.NoError(t, err)

	_, err = c.CompleteChat(context.Background(), inference.ChatRequest{Model: "m"})
	require.ErrorIs(t, err, inference.ErrUnavailable)
}
