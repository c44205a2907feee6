package httpHandler

import (
	"net/http"

	"device-hub/auth"
	"device-hub/usecases"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *auth.Service
	users       auth.UserSource
	userUseCase *usecases.UserUseCase
}

func NewAuthHandler(authService *auth.Service, users auth.UserSource, userUseCase *usecases.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		userUseCase: userUseCase,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userUseCase.Register(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// Login handles POST /api/v1/auth/login and exchanges credentials for a
// bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Authenticate(h.users, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
