// server/internal/models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssetTypeReturnable    = "returnable"
	AssetTypeNonReturnable = "non-returnable"
)

// AssetItem is one inventory line owned by an employer.
// Invariant: 0 <= Available <= Total.
type AssetItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AssetID       string             `bson:"assetID" json:"assetID"`
	EmployerEmail string             `bson:"employerEmail" json:"employerEmail"`
	Name          string             `bson:"name" json:"name"`
	Type          string             `bson:"type" json:"type"`
	Total         int                `bson:"total" json:"total"`
	Available     int                `bson:"available" json:"available"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
