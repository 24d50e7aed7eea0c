package pets

import "context"

// Repository persiste mascotas. Toda lectura/mutación puntual va scopeada por
// owner: un id de otro dueño se comporta igual que un id inexistente (ErrNotFound).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, ownerUserID, id string) error
	GetForOwner(ctx context.Context, ownerUserID, id string) (Pet, error)

	// ListByOwner devuelve en orden de inserción.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
