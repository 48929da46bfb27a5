package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequestLogger logs one line per request through logrus
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,   // HTTP method
			"path":      c.Request.URL.Path, // Path without query
			"status":    status,             // Response status
			"latency":   time.Since(start),  // Handling time
			"client_ip": c.ClientIP(),       // Caller address
		})
		if identity, ok := IdentityFrom(c); ok {
			entry = entry.WithField("user_id", identity.UserID)
		}
		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
