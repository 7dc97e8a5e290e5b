package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
)

// CurrentUser returns the claims attached by the JWT middleware, or nil.
func CurrentUser(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
