// server/internal/api/handlers/hr_handler.go
package handlers

import (
	"context"
	"net/http"

	"asset-verse-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HRHandler struct {
	DB *mongo.Database
}

// packages maps a subscription tier to its employee-seat limit. Checkout and
// payment verification happen outside this service; this endpoint records the
// outcome.
var packages = map[string]int{
	"basic":    5,
	"standard": 10,
	"premium":  20,
}

type UpgradePackageRequest struct {
	Package string `json:"package" binding:"required,oneof=basic standard premium"`
}

// UpgradePackage sets the HR account's subscription and seat limit.
func (h *HRHandler) UpgradePackage(c *gin.Context) {
	employerEmail := c.GetString("user_email")

	var req UpgradePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := packages[req.Package]

	collection := h.DB.Collection("users")
	result := collection.FindOneAndUpdate(context.Background(),
		bson.M{"email": employerEmail, "role": models.RoleHR},
		bson.M{"$set": bson.M{"packageLimit": limit, "subscription": req.Package}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := result.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employer account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
		return
	}

	c.JSON(http.StatusOK, upgradeSummary(user))
}

// upgradeSummary pairs the new limit with the current seat usage. A downgrade
// below the occupied seats keeps the existing affiliations, so the overshoot
// is reported for the caller to surface.
func upgradeSummary(user models.User) gin.H {
	out := gin.H{
		"package":          user.Subscription,
		"packageLimit":     user.PackageLimit,
		"currentEmployees": user.CurrentEmployees,
	}
	if user.CurrentEmployees > user.PackageLimit {
		out["seatsOverLimit"] = user.CurrentEmployees - user.PackageLimit
	}
	return out
}

// GetMyAccount returns the HR account, including the seat counters.
func (h *HRHandler) GetMyAccount(c *gin.Context) {
	employerEmail := c.GetString("user_email")

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"email": employerEmail}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMyEmployees lists the active affiliations of the HR user's company.
func (h *HRHandler) GetMyEmployees(c *gin.Context) {
	employerEmail := c.GetString("user_email")

	collection := h.DB.Collection("affiliations")
	cursor, err := collection.Find(context.Background(), bson.M{
		"employerEmail": employerEmail,
		"status":        models.AffiliationStatusActive,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query affiliations"})
		return
	}
	defer cursor.Close(context.Background())

	var affiliations []models.Affiliation
	if err = cursor.All(context.Background(), &affiliations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode affiliations"})
		return
	}

	if affiliations == nil {
		affiliations = []models.Affiliation{}
	}

	c.JSON(http.StatusOK, affiliations)
}
