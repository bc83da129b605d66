// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// User matches a document in the "users" collection. HR users double as the
// employer account: PackageLimit and CurrentEmployees live here and are the
// counters the affiliation registry enforces against.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	DateOfBirth string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	UserPhoto   string             `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`

	// HR-only fields
	CompanyName      string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyLogo      string `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	PackageLimit     int    `bson:"packageLimit,omitempty" json:"packageLimit,omitempty"`
	CurrentEmployees int    `bson:"currentEmployees" json:"currentEmployees"`
	Subscription     string `bson:"subscription,omitempty" json:"subscription,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
