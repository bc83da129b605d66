// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"net/http"

	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RequestHandler struct {
	DB      *mongo.Database
	Service *core.RequestService
	Hub     *socket.Hub
}

type SubmitRequestPayload struct {
	AssetID string `json:"assetID" binding:"required"`
	Note    string `json:"note"`
}

type DecideRequestPayload struct {
	Outcome string `json:"outcome" binding:"required"`
}

// SubmitRequest files a pending request for one unit of an asset.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var payload SubmitRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.Service.SubmitRequest(c.Request.Context(), core.SubmitInput{
		EmployeeEmail: c.GetString("user_email"),
		EmployeeName:  c.GetString("user_name"),
		AssetID:       payload.AssetID,
		Note:          payload.Note,
	})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

// GetMyRequests lists the calling employee's requests, optionally by status.
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	filter := bson.M{"employeeEmail": c.GetString("user_email")}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	h.listRequests(c, filter)
}

// GetEmployerRequests lists requests addressed to the HR user's company.
// Defaults to the pending queue; ?status=all returns everything.
func (h *RequestHandler) GetEmployerRequests(c *gin.Context) {
	filter := bson.M{"employerEmail": c.GetString("user_email")}

	status := c.Query("status")
	switch status {
	case "":
		filter["status"] = models.RequestStatusPending
	case "all":
	default:
		filter["status"] = status
	}

	if search := c.Query("search"); search != "" {
		filter["$or"] = []bson.M{
			{"employeeName": bson.M{"$regex": search, "$options": "i"}},
			{"assetName": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	h.listRequests(c, filter)
}

// GetRequestByID returns one request, visible to its requester and its employer.
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	requestID := c.Param("id")

	var req models.Request
	err := h.DB.Collection("requests").FindOne(context.Background(), bson.M{"requestID": requestID}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return
	}

	email := c.GetString("user_email")
	if req.EmployeeEmail != email && req.EmployerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this request"})
		return
	}

	c.JSON(http.StatusOK, req)
}

// DecideRequest applies the HR approve/reject decision and notifies the
// requester over WebSocket.
func (h *RequestHandler) DecideRequest(c *gin.Context) {
	requestID := c.Param("id")

	var payload DecideRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only the employer the request is addressed to may decide it.
	pending, err := h.Service.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if pending.EmployerEmail != c.GetString("user_email") {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this request"})
		return
	}

	req, err := h.Service.DecideRequest(c.Request.Context(), requestID, payload.Outcome)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Notify(req.EmployeeEmail, gin.H{
			"type":      "request_decided",
			"requestID": req.RequestID,
			"assetName": req.AssetName,
			"status":    req.Status,
		})
	}

	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) listRequests(c *gin.Context, filter bson.M) {
	collection := h.DB.Collection("requests")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	defer cursor.Close(context.Background())

	var requests []models.Request
	if err = cursor.All(context.Background(), &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode requests"})
		return
	}

	if requests == nil {
		requests = []models.Request{}
	}

	c.JSON(http.StatusOK, requests)
}
