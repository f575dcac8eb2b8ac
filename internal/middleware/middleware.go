package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmfernandez/gin-food-api/internal/auth"
	"github.com/jmfernandez/gin-food-api/internal/models"
)

// Context keys set by RequireAuth for downstream handlers
const (
	ContextSubjectKey = "authSubject"
	ContextEmailKey   = "authEmail"
)

// RequireAuth validates the Bearer token on every request against the
// identity provider's signing keys and stores the decoded claims in the
// request context. Requests without a valid token are rejected with 401.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, models.MsgUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, models.MsgUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, models.MsgInvalidToken)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respondUnauthorized(c, models.MsgTokenExpired)
				return
			}
			respondUnauthorized(c, models.MsgInvalidToken)
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextEmailKey, claims.Email)

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		models.NewAPIError(models.ErrCodeUnauthorized, message))
}
