// server/internal/store/mongostore/assignments.go
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

// AssignmentTracker implements core.AssignmentTracker on the "assignments"
// collection. A unique index on requestID makes Open idempotent per request.
type AssignmentTracker struct {
	DB *mongo.Database
}

func (t *AssignmentTracker) collection() *mongo.Collection {
	return t.DB.Collection("assignments")
}

func (t *AssignmentTracker) Open(ctx context.Context, asg models.Assignment) (models.Assignment, bool, error) {
	result, err := t.collection().InsertOne(ctx, asg)
	if mongo.IsDuplicateKeyError(err) {
		// A retry or a concurrent saga already opened one for this request.
		var existing models.Assignment
		ferr := t.collection().FindOne(ctx, bson.M{"requestID": asg.RequestID}).Decode(&existing)
		if ferr != nil {
			return models.Assignment{}, false, ferr
		}
		return existing, false, nil
	}
	if err != nil {
		return models.Assignment{}, false, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		asg.ID = oid
	}
	return asg, true, nil
}

func (t *AssignmentTracker) GetAssignment(ctx context.Context, assignmentID string) (models.Assignment, error) {
	var asg models.Assignment
	err := t.collection().FindOne(ctx, bson.M{"assignmentID": assignmentID}).Decode(&asg)
	if err == mongo.ErrNoDocuments {
		return models.Assignment{}, core.ErrAssignmentNotFound
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return asg, nil
}

func (t *AssignmentTracker) Close(ctx context.Context, assignmentID string, returnedAt time.Time) (models.Assignment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asg models.Assignment
	err := t.collection().FindOneAndUpdate(ctx,
		bson.M{"assignmentID": assignmentID, "status": models.AssignmentStatusAssigned},
		bson.M{"$set": bson.M{"status": models.AssignmentStatusReturned, "returnedAt": returnedAt}},
		opts,
	).Decode(&asg)
	if err == mongo.ErrNoDocuments {
		count, cerr := t.collection().CountDocuments(ctx, bson.M{"assignmentID": assignmentID})
		if cerr != nil {
			return models.Assignment{}, cerr
		}
		if count == 0 {
			return models.Assignment{}, core.ErrAssignmentNotFound
		}
		return models.Assignment{}, core.ErrAlreadyReturned
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return asg, nil
}

func (t *AssignmentTracker) Discard(ctx context.Context, assignmentID string) error {
	_, err := t.collection().DeleteOne(ctx, bson.M{"assignmentID": assignmentID})
	return err
}
