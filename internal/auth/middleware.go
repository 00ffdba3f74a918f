package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userContextKey = "okblogUserID"

// Middleware gates protected routes behind a bearer token. The header
// must be exactly "Bearer <token>" (scheme matched case-insensitively)
// and the token payload must carry a userId claim. Every failure mode
// aborts with the same opaque 401 body.
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			reject(c)
			return
		}
		token := parts[1]

		if err := verifier.Verify(token); err != nil {
			reject(c)
			return
		}

		userID, ok := UserIDFromToken(token)
		if !ok {
			reject(c)
			return
		}

		c.Set(userContextKey, userID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated caller from the context.
func CurrentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}

func reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
