package pets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PhotoStore guarda la imagen y devuelve la URL pública del objeto.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

var photoExt = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// pendingPhoto es una data URL ya validada que falta subir al PhotoStore.
type pendingPhoto struct {
	contentType string
	ext         string
	data        []byte
}

// parsePhoto valida la foto recibida. Si hay PhotoStore y es una data URL
// de imagen devuelve pending != nil; cualquier otro valor pasa tal cual.
func (s *Service) parsePhoto(photo string) (string, *pendingPhoto, error) {
	if s.photos == nil || !strings.HasPrefix(photo, "data:") {
		return photo, nil, nil
	}

	contentType, data, err := decodeDataURL(photo)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ext, ok := photoExt[contentType]
	if !ok {
		return "", nil, fmt.Errorf("%w: unsupported photo type %q", ErrInvalidInput, contentType)
	}
	return "", &pendingPhoto{contentType: contentType, ext: ext, data: data}, nil
}

// uploadPhoto sube la foto bajo pets/<owner>/<pet>/ y devuelve la URL pública.
func (s *Service) uploadPhoto(ctx context.Context, p Pet, ph *pendingPhoto) (string, error) {
	key := fmt.Sprintf("pets/%s/%s/%s.%s", p.OwnerUserID, p.ID, uuid.NewString(), ph.ext)
	url, err := s.photos.Put(ctx, key, ph.data, ph.contentType)
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return url, nil
}

// decodeDataURL parsea "data:<mime>;base64,<payload>".
func decodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data url without payload")
	}

	contentType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data url must be base64 encoded")
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty photo")
	}
	return contentType, data, nil
}
