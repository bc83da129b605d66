// server/internal/api/handlers/assignment_handler.go
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

type AssignmentHandler struct {
	DB      *mongo.Database
	Service *core.RequestService
	Hub     *socket.Hub
}

// GetMyAssignments lists the assets currently held by the calling employee.
// ?status=returned shows past holdings instead.
func (h *AssignmentHandler) GetMyAssignments(c *gin.Context) {
	filter := bson.M{"employeeEmail": c.GetString("user_email")}

	status := c.Query("status")
	if status == "" {
		status = models.AssignmentStatusAssigned
	}
	if status != "all" {
		filter["status"] = status
	}

	collection := h.DB.Collection("assignments")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	defer cursor.Close(context.Background())

	var assignments []models.Assignment
	if err = cursor.All(context.Background(), &assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
		return
	}

	if assignments == nil {
		assignments = []models.Assignment{}
	}

	c.JSON(http.StatusOK, assignments)
}

// ReturnAssignment closes an assignment and puts the unit back in stock.
func (h *AssignmentHandler) ReturnAssignment(c *gin.Context) {
	assignmentID := c.Param("id")
	employerEmail := c.GetString("user_email")

	// Only the employer that owns the assignment may take the asset back.
	var existing models.Assignment
	err := h.DB.Collection("assignments").FindOne(context.Background(), bson.M{"assignmentID": assignmentID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		return
	}
	if existing.EmployerEmail != employerEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this assignment"})
		return
	}

	asg, err := h.Service.ReturnAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Notify(asg.EmployeeEmail, gin.H{
			"type":         "assignment_returned",
			"assignmentID": asg.AssignmentID,
			"assetName":    asg.AssetName,
		})
	}

	c.JSON(http.StatusOK, asg)
}
