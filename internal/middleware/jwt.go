package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/response"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/service"
)

const claimsKey = "session_claims"

// JWTAuth validates the bearer token and stores the session claims on the
// Gin context.
func JWTAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// SetSessionClaims stores claims on the context the way JWTAuth does.
func SetSessionClaims(c *gin.Context, claims *models.JWTClaims) {
	c.Set(claimsKey, claims)
}

// SessionClaims returns the claims stored by JWTAuth.
func SessionClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
