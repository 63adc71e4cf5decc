package middleware

import (
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records every API request with its status and
// latency. Logging failures never fail the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := models.AuditLog{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			LatencyMS: time.Since(start).Milliseconds(),
			IP:        c.ClientIP(),
		}
		_ = db.Create(&entry).Error
	}
}
