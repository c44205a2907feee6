package httpHandler

import (
	"errors"
	"net/http"

	"device-hub/auth"
	"device-hub/repositories"
	"device-hub/usecases"

	"github.com/gin-gonic/gin"
)

// respondError translates the internal error taxonomy into stable status
// codes and messages. Nothing internal leaks: not-found and not-owned are
// already collapsed below this layer, and both token failure modes read the
// same to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrValidation), errors.Is(err, repositories.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
