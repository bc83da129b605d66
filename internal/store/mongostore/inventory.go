// server/internal/store/mongostore/inventory.go
package mongostore

import (
	"context"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InventoryStore implements core.InventoryStore on the "assets" collection.
// Every stock mutation is a single conditional FindOneAndUpdate so concurrent
// reservations can never drive available negative.
type InventoryStore struct {
	DB *mongo.Database
}

func (s *InventoryStore) collection() *mongo.Collection {
	return s.DB.Collection("assets")
}

func (s *InventoryStore) GetAsset(ctx context.Context, assetID string) (models.AssetItem, error) {
	var asset models.AssetItem
	err := s.collection().FindOne(ctx, bson.M{"assetID": assetID}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return models.AssetItem{}, core.ErrAssetNotFound
	}
	if err != nil {
		return models.AssetItem{}, err
	}
	return asset, nil
}

func (s *InventoryStore) ReserveUnit(ctx context.Context, assetID string) (models.AssetItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asset models.AssetItem
	err := s.collection().FindOneAndUpdate(ctx,
		bson.M{"assetID": assetID, "available": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"available": -1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		opts,
	).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		// Either the asset is missing or the guard rejected the decrement.
		return models.AssetItem{}, s.notFoundOr(ctx, assetID, core.ErrOutOfStock)
	}
	if err != nil {
		return models.AssetItem{}, err
	}
	return asset, nil
}

func (s *InventoryStore) ReleaseUnit(ctx context.Context, assetID string) (models.AssetItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asset models.AssetItem
	err := s.collection().FindOneAndUpdate(ctx,
		bson.M{"assetID": assetID, "$expr": bson.M{"$lt": bson.A{"$available", "$total"}}},
		bson.M{
			"$inc": bson.M{"available": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		opts,
	).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		// Already at capacity: a double release must not push past total.
		return s.GetAsset(ctx, assetID)
	}
	if err != nil {
		return models.AssetItem{}, err
	}
	return asset, nil
}

func (s *InventoryStore) SetQuantity(ctx context.Context, assetID string, newTotal int, now time.Time) (models.AssetItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Pipeline update: available shifts by the same delta as total, and the
	// guard refuses totals below the currently assigned unit count.
	filter := bson.M{
		"assetID": assetID,
		"$expr":   bson.M{"$gte": bson.A{newTotal, bson.M{"$subtract": bson.A{"$total", "$available"}}}},
	}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "available", Value: bson.D{{Key: "$add", Value: bson.A{
				"$available",
				bson.D{{Key: "$subtract", Value: bson.A{newTotal, "$total"}}},
			}}}},
			{Key: "total", Value: newTotal},
			{Key: "updatedAt", Value: now},
		}}},
	}

	var asset models.AssetItem
	err := s.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return models.AssetItem{}, s.notFoundOr(ctx, assetID, core.ErrInvalidQuantity)
	}
	if err != nil {
		return models.AssetItem{}, err
	}
	return asset, nil
}

// notFoundOr reports ErrAssetNotFound when the asset is missing, otherwise the
// given guard error.
func (s *InventoryStore) notFoundOr(ctx context.Context, assetID string, guardErr error) error {
	count, err := s.collection().CountDocuments(ctx, bson.M{"assetID": assetID})
	if err != nil {
		return err
	}
	if count == 0 {
		return core.ErrAssetNotFound
	}
	return guardErr
}
