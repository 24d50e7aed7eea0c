package inference

import (
	"context"
	"errors"
	"fmt"
)

// Roles de chat-completion.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message es un turno {role, content} enviado al proveedor.
type Message struct {
	Role    string
	Content string
}

// ChatRequest es el payload opaco que arman los prompt builders.
// MaxTokens <= 0 => sin límite explícito (default del proveedor).
type ChatRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// Prediction es una entrada del clasificador de imágenes.
type Prediction struct {
	Label string
	Score float64
}

// ChatCompleter llama a un endpoint estilo chat-completion y devuelve el
// contenido de la primera choice ("" si el proveedor no devolvió choices).
type ChatCompleter interface {
	CompleteChat(ctx context.Context, req ChatRequest) (string, error)
}

// ImageClassifier manda bytes crudos al clasificador y devuelve las
// predicciones en el orden del proveedor (confianza descendente).
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, image []byte) ([]Prediction, error)
}

var (
	// ErrUnavailable: no hubo respuesta HTTP (red, DNS, timeout).
	ErrUnavailable = errors.New("inference provider unavailable")

	// ErrBadStatus: el proveedor respondió con status no-2xx.
	ErrBadStatus = errors.New("inference provider returned non-success status")

	// ErrMalformedResponse agrupa las respuestas que no tienen la forma esperada.
	ErrMalformedResponse = errors.New("malformed inference response")

	// ErrInvalidJSON: el body no es JSON.
	ErrInvalidJSON = fmt.Errorf("%w: invalid json", ErrMalformedResponse)

	// ErrUnexpectedShape: JSON válido pero no la estructura esperada.
	ErrUnexpectedShape = fmt.Errorf("%w: unexpected structure", ErrMalformedResponse)
)

// UpstreamError describe una falla de un proveedor de inferencia.
// Err es uno de los sentinels de arriba; StatusCode/Body solo están
// presentes cuando hubo respuesta HTTP.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v (status=%d)", e.Provider, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
