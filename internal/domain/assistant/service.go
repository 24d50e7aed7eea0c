package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
	"github.com/svr1m/PawCare-App/internal/domain/pets"
	"github.com/svr1m/PawCare-App/internal/platform/logger"
	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

const (
	DefaultReply = "Sorry, I could not understand."
	NoPetTip     = "Add a pet profile to receive personalized breed tips."
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrNoImage      = errors.New("image is required")
)

// PetLookup resuelve la mascota "activa" del dueño (la primera en orden de store).
// *pets.Service la implementa.
type PetLookup interface {
	FirstByOwner(ctx context.Context, ownerUserID string) (pets.Pet, bool, error)
}

type Service struct {
	pets       PetLookup
	chat       inference.ChatCompleter
	classifier inference.ImageClassifier

	tipsCache breedtips.Repository // opcional
	cacheTTL  time.Duration        // 0 = no expira

	chatModel     string
	tipsModel     string
	faqsModel     string
	tipsMaxTokens int

	log logger.Logger
	now func() time.Time
}

type Option func(*Service)

func WithModels(chat, tips, faqs string) Option {
	return func(s *Service) {
		if v := strings.TrimSpace(chat); v != "" {
			s.chatModel = v
		}
		if v := strings.TrimSpace(tips); v != "" {
			s.tipsModel = v
		}
		if v := strings.TrimSpace(faqs); v != "" {
			s.faqsModel = v
		}
	}
}

func WithTipsMaxTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tipsMaxTokens = n
		}
	}
}

// WithTipsCache activa el cache read-through de tips por raza.
func WithTipsCache(repo breedtips.Repository, ttl time.Duration) Option {
	return func(s *Service) {
		s.tipsCache = repo
		s.cacheTTL = ttl
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// chat/classifier pueden ser nil (proveedor sin configurar): las operaciones
// que los usan fallan con inference.ErrUnavailable.
func NewService(petLookup PetLookup, chat inference.ChatCompleter, classifier inference.ImageClassifier, opts ...Option) *Service {
	s := &Service{
		pets:          petLookup,
		chat:          chat,
		classifier:    classifier,
		chatModel:     DefaultChatModel,
		tipsModel:     DefaultTipsModel,
		faqsModel:     DefaultFAQsModel,
		tipsMaxTokens: DefaultTipsMaxTokens,
		log:           logger.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat responde un mensaje libre tal cual lo devuelve el modelo.
// Respuesta vacía => DefaultReply.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}

	raw, err := s.complete(ctx, BuildChatRequest(s.chatModel, message))
	if err != nil {
		return "", err
	}
	if raw == "" {
		return DefaultReply, nil
	}
	return raw, nil
}

// Tips genera tips para la raza de la primera mascota del dueño.
// Sin mascota devuelve el tip estático sin llamar al proveedor.
func (s *Service) Tips(ctx context.Context, ownerUserID string) ([]string, error) {
	pet, ok, err := s.pets.FirstByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("load pet: %w", err)
	}
	if !ok {
		return []string{NoPetTip}, nil
	}

	if tips, hit := s.cachedTips(ctx, pet.Breed); hit {
		return tips, nil
	}

	raw, err := s.complete(ctx, BuildTipsRequest(s.tipsModel, pet.Breed, s.tipsMaxTokens))
	if err != nil {
		return nil, err
	}

	tips := ExtractTips(raw)
	s.storeTips(ctx, pet.Breed, tips)
	return tips, nil
}

// FAQs genera preguntas frecuentes para la raza de la primera mascota.
// Sin dueño, mascota o raza devuelve vacío (no es error).
func (s *Service) FAQs(ctx context.Context, ownerUserID string) ([]FAQ, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return []FAQ{}, nil
	}
	pet, ok, err := s.pets.FirstByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("load pet: %w", err)
	}
	if !ok || strings.TrimSpace(pet.Breed) == "" {
		return []FAQ{}, nil
	}

	raw, err := s.complete(ctx, BuildFAQsRequest(s.faqsModel, pet.Breed))
	if err != nil {
		return nil, err
	}
	return ExtractFAQs(raw), nil
}

// IdentifyBreed clasifica la imagen y devuelve el label top-1.
func (s *Service) IdentifyBreed(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoImage
	}
	if s.classifier == nil {
		return "", fmt.Errorf("%w: image classifier not configured", inference.ErrUnavailable)
	}

	preds, err := s.classifier.ClassifyImage(ctx, image)
	if err != nil {
		return "", err
	}
	return ExtractBreedLabel(preds)
}

func (s *Service) complete(ctx context.Context, req inference.ChatRequest) (string, error) {
	if s.chat == nil {
		return "", fmt.Errorf("%w: chat provider not configured", inference.ErrUnavailable)
	}
	return s.chat.CompleteChat(ctx, req)
}

// Los errores de cache se loguean y se ignoran: el cache nunca rompe el request.
func (s *Service) cachedTips(ctx context.Context, breed string) ([]string, bool) {
	if s.tipsCache == nil {
		return nil, false
	}
	t, err := s.tipsCache.Get(ctx, breed)
	if err != nil {
		if !errors.Is(err, breedtips.ErrNotFound) {
			s.log.Warn("tips cache read failed", map[string]any{"breed": breed, "error": err})
		}
		return nil, false
	}
	if s.cacheTTL > 0 && s.now().Sub(t.UpdatedAt) > s.cacheTTL {
		return nil, false
	}
	if len(t.Tips) == 0 {
		return nil, false
	}
	return t.Tips, true
}

func (s *Service) storeTips(ctx context.Context, breed string, tips []string) {
	if s.tipsCache == nil || len(tips) == 0 {
		return
	}
	err := s.tipsCache.Upsert(ctx, breedtips.BreedTip{
		Breed:     breed,
		Tips:      tips,
		UpdatedAt: s.now(),
	})
	if err != nil {
		s.log.Warn("tips cache write failed", map[string]any{"breed": breed, "error": err})
	}
}
