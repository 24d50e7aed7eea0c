package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
	"github.com/svr1m/PawCare-App/internal/domain/pets"
)

func TestPetRepo_InsertionOrderAndOwnerScope(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()

	now := time.Now()
	for _, p := range []pets.Pet{
		{ID: "c", OwnerUserID: "u1", Name: "Third", CreatedAt: now},
		{ID: "a", OwnerUserID: "u1", Name: "Fourth", CreatedAt: now.Add(-time.Hour)},
		{ID: "b", OwnerUserID: "u2", Name: "Other"},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}
	require.Error(t, repo.Create(ctx, pets.Pet{ID: "a", OwnerUserID: "u1"}))

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "c", items[0].ID)
	require.Equal(t, "a", items[1].ID)

	_, err = repo.GetForOwner(ctx, "u2", "a")
	require.ErrorIs(t, err, pets.ErrNotFound)

	err = repo.Update(ctx, pets.Pet{ID: "a", OwnerUserID: "u2", Name: "Stolen"})
	require.ErrorIs(t, err, pets.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "u2", "a"), pets.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "u1", "c"))

	items, err = repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Fourth", items[0].Name)
}

func TestPetRepo_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Milo", CreatedAt: created}))
	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Max"}))

	got, err := repo.GetForOwner(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Max", got.Name)
	require.Equal(t, created, got.CreatedAt)
}

func TestBreedTipsRepo_NormalizesKey(t *testing.T) {
	ctx := context.Background()
	repo := NewBreedTipsRepo()

	_, err := repo.Get(ctx, "Beagle")
	require.ErrorIs(t, err, breedtips.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, breedtips.BreedTip{Breed: " Beagle ", Tips: []string{"Walk daily"}}))

	got, err := repo.Get(ctx, "BEAGLE")
	require.NoError(t, err)
	require.Equal(t, "beagle", got.Breed)
	require.Equal(t, []string{"Walk daily"}, got.Tips)
}
