package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivenow/car-rental-backend/internal/auth"
	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
	"github.com/drivenow/car-rental-backend/internal/pkg/response"
)

// AuthHandler issues operator tokens. There is a single operator principal;
// the password is provisioned out of band as a bcrypt hash.
type AuthHandler struct {
	passwordHash string
	hasher       auth.PasswordHasher
	jwtManager   *auth.JWTManager
}

func NewAuthHandler(passwordHash string, hasher auth.PasswordHasher, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		passwordHash: passwordHash,
		hasher:       hasher,
		jwtManager:   jwtManager,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "password is required"))
		return
	}

	if err := h.hasher.Compare(h.passwordHash, body.Password); err != nil {
		response.Error(c, apperror.New(http.StatusUnauthorized, apperror.CodeUnauthorized, "invalid password"))
		return
	}

	token, err := h.jwtManager.GenerateAccessToken()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}
