package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the cron endpoints with a shared secret, accepted either
// as "Authorization: Bearer <secret>" or as a "?key=<secret>" query
// parameter. An empty configured secret disables the check.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		presented := c.Query("key")
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			presented = strings.TrimPrefix(header, "Bearer ")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid cron secret"})
			c.Abort()
			return
		}

		c.Next()
	}
}
