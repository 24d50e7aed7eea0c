package together

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/svr1m/PawCare-App/internal/platform/logger"
	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

const (
	DefaultBaseURL = "https://api.together.xyz/v1"
	providerName   = "together"

	maxErrorBody = 64 << 10
)

var (
	ErrNotConfigured = errors.New("together client not configured")
)

// Config del cliente. Together expone un endpoint compatible con OpenAI,
// así que sirve cualquier base URL con /chat/completions.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implementa inference.ChatCompleter sobre go-openai.
type Client struct {
	api *openai.Client
	log logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = logger.NewNop()
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	oc := openai.DefaultConfig(key)
	oc.BaseURL = base
	oc.HTTPClient = &rawErrorDoer{hc: &http.Client{Timeout: timeout}}

	return &Client{
		api: openai.NewClientWithConfig(oc),
		log: log.With(map[string]any{"provider": providerName}),
	}, nil
}

func (c *Client) CompleteChat(ctx context.Context, req inference.ChatRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	creq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: msgs,
	}
	if req.MaxTokens > 0 {
		creq.MaxTokens = req.MaxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, creq)
	if err != nil {
		uerr := toUpstreamError(err)
		c.log.Warn("chat completion failed", map[string]any{
			"model":  req.Model,
			"status": uerr.StatusCode,
			"err":    err,
		})
		return "", uerr
	}

	if len(resp.Choices) == 0 {
		c.log.Debug("chat completion without choices", map[string]any{"model": req.Model})
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// statusError lleva el status y el body crudo de una respuesta no-2xx.
type statusError struct {
	StatusCode int
	Body       []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("together: status %d", e.StatusCode)
}

// rawErrorDoer corta las respuestas no-2xx antes de que go-openai las
// decodifique, así UpstreamError.Body conserva el error completo del proveedor.
type rawErrorDoer struct {
	hc *http.Client
}

func (d *rawErrorDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &statusError{StatusCode: resp.StatusCode, Body: body}
}

// toUpstreamError normaliza los errores de la llamada:
// - statusError: el proveedor respondió no-2xx (body crudo).
// - url.Error: no hubo respuesta (red/timeout).
// - cualquier otro: el body 2xx no decodificó.
func toUpstreamError(err error) *inference.UpstreamError {
	var serr *statusError
	if errors.As(err, &serr) {
		return &inference.UpstreamError{
			Provider:   providerName,
			StatusCode: serr.StatusCode,
			Body:       strings.TrimSpace(string(serr.Body)),
			Err:        inference.ErrBadStatus,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &inference.UpstreamError{
			Provider: providerName,
			Body:     err.Error(),
			Err:      inference.ErrUnavailable,
		}
	}

	return &inference.UpstreamError{
		Provider: providerName,
		Body:     err.Error(),
		Err:      inference.ErrInvalidJSON,
	}
}
