// server/internal/models/affiliation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AffiliationStatusActive   = "active"
	AffiliationStatusInactive = "inactive"
)

// Affiliation links an employee to an employer. At most one exists per
// (employee, employer) pair; it is created the first time a request of that
// employee is approved by that employer and exempts later approvals from the
// package-limit check.
type Affiliation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EmployeeEmail string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName  string             `bson:"employeeName" json:"employeeName"`
	EmployerEmail string             `bson:"employerEmail" json:"employerEmail"`
	CompanyName   string             `bson:"companyName" json:"companyName"`
	CompanyLogo   string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	Role          string             `bson:"role" json:"role"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
