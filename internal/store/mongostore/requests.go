// server/internal/store/mongostore/requests.go
package mongostore

import (
	"context"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestLedger implements core.RequestLedger on the "requests" collection.
type RequestLedger struct {
	DB *mongo.Database
}

func (l *RequestLedger) collection() *mongo.Collection {
	return l.DB.Collection("requests")
}

func (l *RequestLedger) Insert(ctx context.Context, req models.Request) (models.Request, error) {
	result, err := l.collection().InsertOne(ctx, req)
	if err != nil {
		return models.Request{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return req, nil
}

func (l *RequestLedger) Get(ctx context.Context, requestID string) (models.Request, error) {
	var req models.Request
	err := l.collection().FindOne(ctx, bson.M{"requestID": requestID}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return models.Request{}, core.ErrRequestNotFound
	}
	if err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// MarkDecided is the atomic pending -> decided transition. The status filter
// makes concurrent decisions race on a single document update: exactly one
// wins, the rest see ErrRequestAlreadyDecided.
func (l *RequestLedger) MarkDecided(ctx context.Context, requestID, status string, decidedAt time.Time) (models.Request, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.Request
	err := l.collection().FindOneAndUpdate(ctx,
		bson.M{"requestID": requestID, "status": models.RequestStatusPending},
		bson.M{"$set": bson.M{"status": status, "decidedAt": decidedAt}},
		opts,
	).Decode(&req)
	if err == mongo.ErrNoDocuments {
		count, cerr := l.collection().CountDocuments(ctx, bson.M{"requestID": requestID})
		if cerr != nil {
			return models.Request{}, cerr
		}
		if count == 0 {
			return models.Request{}, core.ErrRequestNotFound
		}
		return models.Request{}, core.ErrRequestAlreadyDecided
	}
	if err != nil {
		return models.Request{}, err
	}
	return req, nil
}
