package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
)

// dynamodbAPI es el subset de *dynamodb.Client que usamos (fakeable en tests).
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
}

// BreedTipsRepo guarda un item por raza: PK = "BREED#<key>".
type BreedTipsRepo struct {
	api       dynamodbAPI
	tableName string
}

func NewBreedTipsRepo(api dynamodbAPI, tableName string) (*BreedTipsRepo, error) {
	if api == nil {
		return nil, errors.New("dynamodb: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("dynamodb: table name must not be empty")
	}
	return &BreedTipsRepo{api: api, tableName: tableName}, nil
}

func breedPK(key string) string {
	return "BREED#" + key
}

func (r *BreedTipsRepo) Get(ctx context.Context, breed string) (breedtips.BreedTip, error) {
	key := breedtips.Key(breed)

	out, err := r.api.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: breedPK(key)},
		},
	})
	if err != nil {
		return breedtips.BreedTip{}, fmt.Errorf("dynamodb: get breed tips: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return breedtips.BreedTip{}, breedtips.ErrNotFound
	}

	return itemToBreedTip(out.Item)
}

func (r *BreedTipsRepo) Upsert(ctx context.Context, t breedtips.BreedTip) error {
	t.Breed = breedtips.Key(t.Breed)
	if t.Breed == "" {
		return errors.New("dynamodb: breed is required")
	}

	_, err := r.api.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      breedTipItem(t),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: upsert breed tips: %w", err)
	}
	return nil
}

func breedTipItem(t breedtips.BreedTip) map[string]types.AttributeValue {
	tips := make([]types.AttributeValue, 0, len(t.Tips))
	for _, tip := range t.Tips {
		tips = append(tips, &types.AttributeValueMemberS{Value: tip})
	}
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: breedPK(t.Breed)},
		"breed":     &types.AttributeValueMemberS{Value: t.Breed},
		"tips":      &types.AttributeValueMemberL{Value: tips},
		"updatedAt": &types.AttributeValueMemberS{Value: t.UpdatedAt.UTC().Format(time.RFC3339)},
	}
}

func itemToBreedTip(item map[string]types.AttributeValue) (breedtips.BreedTip, error) {
	breed, ok := item["breed"].(*types.AttributeValueMemberS)
	if !ok {
		return breedtips.BreedTip{}, errors.New("dynamodb: attribute \"breed\" missing or not a string")
	}
	list, ok := item["tips"].(*types.AttributeValueMemberL)
	if !ok {
		return breedtips.BreedTip{}, errors.New("dynamodb: attribute \"tips\" missing or not a list")
	}

	t := breedtips.BreedTip{Breed: breed.Value, Tips: make([]string, 0, len(list.Value))}
	for i, v := range list.Value {
		s, ok := v.(*types.AttributeValueMemberS)
		if !ok {
			return breedtips.BreedTip{}, fmt.Errorf("dynamodb: tips[%d] is not a string", i)
		}
		t.Tips = append(t.Tips, s.Value)
	}

	// updatedAt es informativo; si falta o no parsea queda en cero.
	if ts, ok := item["updatedAt"].(*types.AttributeValueMemberS); ok {
		t.UpdatedAt, _ = time.Parse(time.RFC3339, ts.Value)
	}
	return t, nil
}
