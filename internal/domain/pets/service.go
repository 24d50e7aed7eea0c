package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo   Repository
	photos PhotoStore // opcional
	now    func() time.Time
}

type Option func(*Service)

// WithPhotoStore activa el offload de fotos data:image/... a un storage externo.
func WithPhotoStore(ps PhotoStore) Option {
	return func(s *Service) {
		s.photos = ps
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name     string
	Breed    string
	Age      *float64 // requerido; puntero para distinguir "no enviado" de 0
	PhotoURL string
}

// PatchString distingue "no enviado" de "enviado null".
type PatchString struct {
	Present bool
	Value   *string
}

type UpdateInput struct {
	// Punteros: nil = no tocar. Strings vacíos también se ignoran.
	Name  *string
	Breed *string
	Age   *float64

	// PhotoURL se aplica si vino en el request, aunque sea null (limpia).
	PhotoURL PatchString
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	if name == "" || breed == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age == nil || *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Breed:       breed,
		Age:         *in.Age,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	photo, pending, err := s.parsePhoto(strings.TrimSpace(in.PhotoURL))
	if err != nil {
		return Pet{}, err
	}
	p.PhotoURL = photo

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	if pending == nil {
		return p, nil
	}

	// La foto se sube recién con el alta hecha; si falla, se deshace el alta.
	url, err := s.uploadPhoto(ctx, p, pending)
	if err != nil {
		_ = s.repo.Delete(ctx, p.OwnerUserID, p.ID)
		return Pet{}, err
	}
	p.PhotoURL = url

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetForOwner(ctx, ownerUserID, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if v := strings.TrimSpace(*in.Name); v != "" {
			p.Name = v
		}
	}
	if in.Breed != nil {
		if v := strings.TrimSpace(*in.Breed); v != "" {
			p.Breed = v
		}
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.PhotoURL.Present {
		photo := ""
		if in.PhotoURL.Value != nil {
			photo = strings.TrimSpace(*in.PhotoURL.Value)
		}
		photo, pending, err := s.parsePhoto(photo)
		if err != nil {
			return Pet{}, err
		}
		if pending != nil {
			if photo, err = s.uploadPhoto(ctx, p, pending); err != nil {
				return Pet{}, err
			}
		}
		p.PhotoURL = photo
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return []Pet{}, nil
	}
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// FirstByOwner devuelve la primera mascota del dueño en orden de store.
// ok=false si no tiene ninguna.
func (s *Service) FirstByOwner(ctx context.Context, ownerUserID string) (Pet, bool, error) {
	items, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Pet{}, false, err
	}
	if len(items) == 0 {
		return Pet{}, false, nil
	}
	return items[0], true, nil
}
