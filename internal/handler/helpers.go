package handler

import (
	"errors"
	"net/http"

	"taskman/internal/access"
	"taskman/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser returns the authenticated user's id from the gin context
// (set by the auth middleware) and writes the error response itself
// when the id is missing or malformed.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a uuid path parameter, responding with 400 on failure.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// respondAccessError maps engine errors to responses. Resolution
// failures and denials both render as a bare not-found, so a caller
// cannot tell an invisible board from a nonexistent one.
func respondAccessError(c *gin.Context, err error) {
	if errors.Is(err, access.ErrNotResolved) || errors.Is(err, access.ErrDenied) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
