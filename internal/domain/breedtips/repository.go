package breedtips

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("breed tips not found")

// Repository guarda tips por raza. Get devuelve ErrNotFound si no hay entrada.
// Las implementaciones normalizan la raza con Key.
type Repository interface {
	Get(ctx context.Context, breed string) (BreedTip, error)
	Upsert(ctx context.Context, t BreedTip) error
}
