package httpHandler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"device-hub/auth"
	"device-hub/entities"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware resolves the bearer token into a user and stores it in the
// request context. Invalid and expired tokens are logged apart but answered
// identically.
func AuthMiddleware(authService *auth.Service, users auth.UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := authService.ResolveCaller(users, tokenString)
		if err != nil {
			log.Printf("token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(callerKey, user)
		c.Next()
	}
}

// Caller returns the user resolved by AuthMiddleware.
func Caller(c *gin.Context) *entities.User {
	return c.MustGet(callerKey).(*entities.User)
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parsePage reads skip/limit query parameters; missing or bad values fall
// back to the use-case defaults.
func parsePage(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return skip, limit
}
