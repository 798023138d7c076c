package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minecash/discord-bot/utils"
)

// RequestLogger logs every request with method, path and caller IP.
func RequestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Infof("%s %s - IP: %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
	}
}

// Auth enforces bearer authentication against the shared secret the website
// holds. The comparison is constant-time.
func Auth(secret string, logger *utils.Logger) gin.HandlerFunc {
	expected := "Bearer " + secret
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") ||
			subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
			logger.Warnf("Unauthorized access attempt from IP: %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
