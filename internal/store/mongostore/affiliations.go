// server/internal/store/mongostore/affiliations.go
package mongostore

import (
	"context"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AffiliationRegistry implements core.AffiliationRegistry over the
// "affiliations" and "users" collections. Uniqueness of the
// (employeeEmail, employerEmail) pair is backed by a unique compound index;
// the package-limit check and the employee-count increment are one conditional
// update on the employer document.
type AffiliationRegistry struct {
	DB *mongo.Database
}

func (r *AffiliationRegistry) affiliations() *mongo.Collection {
	return r.DB.Collection("affiliations")
}

func (r *AffiliationRegistry) users() *mongo.Collection {
	return r.DB.Collection("users")
}

func (r *AffiliationRegistry) GetOrCreate(ctx context.Context, employeeEmail, employerEmail, employeeName string, now time.Time) (models.Affiliation, bool, error) {
	pair := bson.M{"employeeEmail": employeeEmail, "employerEmail": employerEmail}

	var existing models.Affiliation
	err := r.affiliations().FindOne(ctx, pair).Decode(&existing)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Affiliation{}, false, err
	}

	var employer models.User
	err = r.users().FindOne(ctx, bson.M{"email": employerEmail, "role": models.RoleHR}).Decode(&employer)
	if err == mongo.ErrNoDocuments {
		return models.Affiliation{}, false, core.ErrEmployerNotFound
	}
	if err != nil {
		return models.Affiliation{}, false, err
	}

	// Claim a seat: increment currentEmployees only while below the limit.
	res, err := r.users().UpdateOne(ctx,
		bson.M{
			"email": employerEmail,
			"role":  models.RoleHR,
			"$expr": bson.M{"$lt": bson.A{"$currentEmployees", "$packageLimit"}},
		},
		bson.M{"$inc": bson.M{"currentEmployees": 1}},
	)
	if err != nil {
		return models.Affiliation{}, false, err
	}
	if res.ModifiedCount == 0 {
		return models.Affiliation{}, false, core.ErrPackageLimitReached
	}

	aff := models.Affiliation{
		EmployeeEmail: employeeEmail,
		EmployeeName:  employeeName,
		EmployerEmail: employerEmail,
		CompanyName:   employer.CompanyName,
		CompanyLogo:   employer.CompanyLogo,
		Role:          "member",
		Status:        models.AffiliationStatusActive,
		CreatedAt:     now,
	}

	result, err := r.affiliations().InsertOne(ctx, aff)
	if mongo.IsDuplicateKeyError(err) {
		// Lost a create race for the same pair: give the seat back and hand
		// out the winner's record.
		if _, derr := r.users().UpdateOne(ctx,
			bson.M{"email": employerEmail, "currentEmployees": bson.M{"$gt": 0}},
			bson.M{"$inc": bson.M{"currentEmployees": -1}},
		); derr != nil {
			return models.Affiliation{}, false, derr
		}
		err = r.affiliations().FindOne(ctx, pair).Decode(&existing)
		if err != nil {
			return models.Affiliation{}, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		if _, derr := r.users().UpdateOne(ctx,
			bson.M{"email": employerEmail, "currentEmployees": bson.M{"$gt": 0}},
			bson.M{"$inc": bson.M{"currentEmployees": -1}},
		); derr != nil {
			return models.Affiliation{}, false, derr
		}
		return models.Affiliation{}, false, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		aff.ID = oid
	}
	return aff, true, nil
}

func (r *AffiliationRegistry) Remove(ctx context.Context, employeeEmail, employerEmail string) error {
	res, err := r.affiliations().DeleteOne(ctx, bson.M{
		"employeeEmail": employeeEmail,
		"employerEmail": employerEmail,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return nil
	}

	_, err = r.users().UpdateOne(ctx,
		bson.M{"email": employerEmail, "currentEmployees": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"currentEmployees": -1}},
	)
	return err
}
