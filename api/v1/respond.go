package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burnboard/models"
)

// respondError maps service errors onto HTTP statuses. Every failure is
// surfaced as one human-readable message; nothing is retried here.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": err.Error(),
	})
}

// actingUserID reads the identity the auth middleware put on the context.
func actingUserID(c *gin.Context) string {
	userID, exists := c.Get("userId")
	if !exists {
		return ""
	}
	return userID.(string)
}
