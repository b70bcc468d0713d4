// README: Recovery middleware turning panics into a JSON 500.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				log.Error("panic recovered",
					zap.String("request_id", RequestID(c)),
					zap.Any("panic", p),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
			}
		}()
		c.Next()
	}
}
