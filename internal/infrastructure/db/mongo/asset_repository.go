package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devboard/devboard-api/internal/core/domain"
)

const collectionAssets = "assets"

type AssetRepository struct {
	col *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{col: db.Collection(collectionAssets)}
}

type assetDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	URL       string             `bson:"url"`
	Alt       string             `bson:"alt,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *assetDoc) toDomain() *domain.Asset {
	return &domain.Asset{
		ID:        d.ID.Hex(),
		Key:       d.Key,
		URL:       d.URL,
		Alt:       d.Alt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Upsert creates the document when the key is new, otherwise replaces its
// url/alt. created_at is only written on insert.
func (r *AssetRepository) Upsert(ctx context.Context, asset *domain.Asset) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"url": asset.URL, "alt": asset.Alt, "updated_at": asset.UpdatedAt},
		"$setOnInsert": bson.M{"key": asset.Key, "created_at": asset.UpdatedAt},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"key": asset.Key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert asset: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *AssetRepository) FindByKey(ctx context.Context, key string) (*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc assetDoc
	if err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer cur.Close(ctx)

	var assets []*domain.Asset
	for cur.Next(ctx) {
		var doc assetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode asset: %w", err)
		}
		assets = append(assets, doc.toDomain())
	}
	return assets, cur.Err()
}

func (r *AssetRepository) DeleteByKey(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// EnsureIndexes creates the unique key index backing upsert-by-key.
func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
