package memory

import (
	"context"
	"sync"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
)

type breedTipsRepo struct {
	mu      sync.RWMutex
	byBreed map[string]breedtips.BreedTip
}

func NewBreedTipsRepo() breedtips.Repository {
	return &breedTipsRepo{
		byBreed: make(map[string]breedtips.BreedTip),
	}
}

func (r *breedTipsRepo) Get(ctx context.Context, breed string) (breedtips.BreedTip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byBreed[breedtips.Key(breed)]
	if !ok {
		return breedtips.BreedTip{}, breedtips.ErrNotFound
	}
	t.Tips = append([]string(nil), t.Tips...)
	return t, nil
}

func (r *breedTipsRepo) Upsert(ctx context.Context, t breedtips.BreedTip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.Breed = breedtips.Key(t.Breed)
	t.Tips = append([]string(nil), t.Tips...)
	r.byBreed[t.Breed] = t
	return nil
}
