// server/internal/api/handlers/asset_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssetHandler struct {
	DB      *mongo.Database
	Service *core.RequestService
}

type CreateAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=returnable non-returnable"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type AdjustQuantityRequest struct {
	Total int `json:"total" binding:"min=0"`
}

// CreateAsset adds a new inventory line for the HR user's company.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	employerEmail := c.GetString("user_email")

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAsset := models.AssetItem{
		AssetID:       fmt.Sprintf("AST-%s", strings.ToUpper(uuid.New().String()[:8])),
		EmployerEmail: employerEmail,
		Name:          req.Name,
		Type:          req.Type,
		Total:         req.Quantity,
		Available:     req.Quantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	collection := h.DB.Collection("assets")
	result, err := collection.InsertOne(context.Background(), newAsset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newAsset.ID = oid
	}

	c.JSON(http.StatusCreated, newAsset)
}

// GetMyAssets lists the HR user's inventory, with optional search and type filters.
func (h *AssetHandler) GetMyAssets(c *gin.Context) {
	employerEmail := c.GetString("user_email")

	filter := bson.M{"employerEmail": employerEmail}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	if assetType := c.Query("type"); assetType != "" {
		filter["type"] = assetType
	}

	collection := h.DB.Collection("assets")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
		return
	}
	defer cursor.Close(context.Background())

	var assets []models.AssetItem
	if err = cursor.All(context.Background(), &assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assets"})
		return
	}

	if assets == nil {
		assets = []models.AssetItem{}
	}

	c.JSON(http.StatusOK, assets)
}

// AdjustQuantity changes an asset's total stock through the inventory engine,
// so the currently assigned units always stay covered.
func (h *AssetHandler) AdjustQuantity(c *gin.Context) {
	assetID := c.Param("id")

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.ownsAsset(c, assetID) {
		return
	}

	asset, err := h.Service.AdjustAssetQuantity(c.Request.Context(), assetID, req.Total)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset removes an asset that has no outstanding assignments.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID := c.Param("id")

	if !h.ownsAsset(c, assetID) {
		return
	}

	collection := h.DB.Collection("assets")

	// Refuse while units are still held by employees.
	result, err := collection.DeleteOne(context.Background(), bson.M{
		"assetID": assetID,
		"$expr":   bson.M{"$eq": bson.A{"$available", "$total"}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Asset has assigned units and cannot be deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// ownsAsset verifies the asset exists and belongs to the calling HR user,
// writing the error response itself when it does not.
func (h *AssetHandler) ownsAsset(c *gin.Context, assetID string) bool {
	employerEmail := c.GetString("user_email")

	var asset models.AssetItem
	err := h.DB.Collection("assets").FindOne(context.Background(), bson.M{"assetID": assetID}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return false
	}
	if asset.EmployerEmail != employerEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this asset"})
		return false
	}
	return true
}
