// server/internal/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is an employee's ask for one unit of an asset. Status moves from
// pending to exactly one of approved/rejected and is terminal after that.
type Request struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RequestID     string             `bson:"requestID" json:"requestID"`
	AssetID       string             `bson:"assetID" json:"assetID"`
	AssetName     string             `bson:"assetName" json:"assetName"`
	AssetType     string             `bson:"assetType" json:"assetType"`
	EmployeeEmail string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName  string             `bson:"employeeName" json:"employeeName"`
	EmployerEmail string             `bson:"employerEmail" json:"employerEmail"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	Status        string             `bson:"status" json:"status"`
	RequestedAt   time.Time          `bson:"requestedAt" json:"requestedAt"`
	DecidedAt     *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}
