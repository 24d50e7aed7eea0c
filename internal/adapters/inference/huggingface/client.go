package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/svr1m/PawCare-App/internal/platform/httpclient"
	"github.com/svr1m/PawCare-App/internal/platform/logger"
	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

const (
	DefaultModelURL = "https://api-inference.huggingface.co/models/skyau/dog-breed-classifier-vit"
	providerName    = "huggingface"

	// Tope del body que se loguea ante fallas de parseo.
	maxLoggedBody = 2048
)

var (
	ErrNotConfigured = errors.New("huggingface client not configured")
)

type Config struct {
	APIKey   string
	ModelURL string
	Timeout  time.Duration
}

// Client implementa inference.ImageClassifier contra la Inference API de HF.
type Client struct {
	http     *httpclient.Client
	modelURL string
	apiKey   string
	log      logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = logger.NewNop()
	}
	u := strings.TrimSpace(cfg.ModelURL)
	if u == "" {
		u = DefaultModelURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http:     httpclient.New(timeout),
		modelURL: u,
		apiKey:   key,
		log:      log.With(map[string]any{"provider": providerName}),
	}, nil
}

func (c *Client) ClassifyImage(ctx context.Context, image []byte) ([]inference.Prediction, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		PathOrURL:   c.modelURL,
		Headers:     map[string]string{"Authorization": "Bearer " + c.apiKey},
		ContentType: "application/octet-stream",
		Body:        image,
	})
	if err != nil {
		c.log.Warn("classifier unreachable", map[string]any{"err": err})
		return nil, &inference.UpstreamError{Provider: providerName, Body: err.Error(), Err: inference.ErrUnavailable}
	}

	if !resp.OK() {
		c.log.Warn("classifier returned non-success status", map[string]any{"status": resp.StatusCode})
		return nil, &inference.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(resp.Body)),
			Err:        inference.ErrBadStatus,
		}
	}

	preds, perr := parsePredictions(resp.Body)
	if perr != nil {
		// El body crudo solo se loguea; nunca viaja al caller HTTP.
		c.log.Warn("classifier response not usable", map[string]any{
			"err":  perr,
			"body": truncate(string(resp.Body)),
		})
		return nil, &inference.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(resp.Body)),
			Err:        perr,
		}
	}

	return preds, nil
}

// parsePredictions trata el payload como no tipado y valida la forma
// [{"label": string, "score": number}, ...] antes de confiar en él.
// Entradas sin label se descartan; si no queda ninguna es ErrUnexpectedShape.
func parsePredictions(raw []byte) ([]inference.Prediction, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, inference.ErrInvalidJSON
	}

	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, inference.ErrUnexpectedShape
	}

	out := make([]inference.Prediction, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		label, _ := m["label"].(string)
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		score, _ := m["score"].(float64)
		out = append(out, inference.Prediction{Label: label, Score: score})
	}

	if len(out) == 0 {
		return nil, inference.ErrUnexpectedShape
	}
	return out, nil
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "...(truncated)"
}
