package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
	"github.com/drivenow/car-rental-backend/internal/pkg/response"
)

// AdminRequired is a Gin middleware that validates the operator JWT from
// Authorization: Bearer <token>.
func AdminRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid Authorization header format")
			return
		}

		if _, err := jwtManager.ParseAndValidate(parts[1]); err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Abort()
	response.Error(c, apperror.New(http.StatusUnauthorized, apperror.CodeUnauthorized, message))
}
