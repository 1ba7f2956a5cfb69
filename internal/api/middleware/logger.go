package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"power-switch/internal/audit"
)

// Logger logs one line per request: method, path, status, latency and
// the resolved client address.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("%s %s -> %d (%s) from %s",
			c.Request.Method, path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			audit.ClientIP(c.Request))
	}
}
