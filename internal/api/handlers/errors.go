// server/internal/api/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"asset-verse-api-server/internal/core"

	"github.com/gin-gonic/gin"
)

// respondCoreError maps the core error taxonomy to HTTP statuses.
func respondCoreError(c *gin.Context, err error) {
	var pf *core.PartialFailureError

	switch {
	case errors.Is(err, core.ErrAssetNotFound),
		errors.Is(err, core.ErrRequestNotFound),
		errors.Is(err, core.ErrAssignmentNotFound),
		errors.Is(err, core.ErrEmployerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrRequestAlreadyDecided),
		errors.Is(err, core.ErrAlreadyReturned),
		errors.Is(err, core.ErrOutOfStock),
		errors.Is(err, core.ErrPackageLimitReached):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidQuantity),
		errors.Is(err, core.ErrInvalidOutcome):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &pf):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation could not complete consistently, operators have been notified"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
