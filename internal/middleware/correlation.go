package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/job-seeker-api/internal/logger"
)

const CorrelationHeader = "X-Correlation-ID"

// CorrelationID tags the request context with an id, taken from the
// X-Correlation-ID header or freshly generated, and logs the request.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := logger.WithCorrelationID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(CorrelationHeader, id)

		slog.InfoContext(ctx, "request received", "method", c.Request.Method, "path", c.Request.URL.Path)
		start := time.Now()

		c.Next()

		slog.InfoContext(ctx, "request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
