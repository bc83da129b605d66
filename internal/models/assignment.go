// server/internal/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentStatusAssigned = "assigned"
	AssignmentStatusReturned = "returned"
)

// Assignment records one asset unit currently held by an employee. Opened
// exactly once per approved request, closed exactly once on return.
type Assignment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AssignmentID  string             `bson:"assignmentID" json:"assignmentID"`
	RequestID     string             `bson:"requestID" json:"requestID"`
	AssetID       string             `bson:"assetID" json:"assetID"`
	AssetName     string             `bson:"assetName" json:"assetName"`
	EmployeeEmail string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployerEmail string             `bson:"employerEmail" json:"employerEmail"`
	Status        string             `bson:"status" json:"status"`
	AssignedAt    time.Time          `bson:"assignedAt" json:"assignedAt"`
	ReturnedAt    *time.Time         `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
}
