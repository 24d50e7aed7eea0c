package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
)

type BreedTipsRepo struct {
	db *sql.DB
}

func NewBreedTipsRepo(db *sql.DB) *BreedTipsRepo {
	return &BreedTipsRepo{db: db}
}

func (r *BreedTipsRepo) Get(ctx context.Context, breed string) (breedtips.BreedTip, error) {
	key := breedtips.Key(breed)

	var (
		t   breedtips.BreedTip
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT breed, tips, updated_at
		FROM breed_tips
		WHERE breed = $1
	`, key).Scan(&t.Breed, &raw, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return breedtips.BreedTip{}, breedtips.ErrNotFound
		}
		return breedtips.BreedTip{}, err
	}

	if err := json.Unmarshal(raw, &t.Tips); err != nil {
		return breedtips.BreedTip{}, fmt.Errorf("decode tips for %q: %w", key, err)
	}
	return t, nil
}

func (r *BreedTipsRepo) Upsert(ctx context.Context, t breedtips.BreedTip) error {
	tips := t.Tips
	if tips == nil {
		tips = []string{}
	}
	raw, err := json.Marshal(tips)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO breed_tips (breed, tips, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (breed) DO UPDATE
		SET tips = EXCLUDED.tips, updated_at = EXCLUDED.updated_at
	`, breedtips.Key(t.Breed), string(raw), t.UpdatedAt)
	return err
}
