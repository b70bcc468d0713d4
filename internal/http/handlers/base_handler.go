// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"towpricing/internal/modules/pricing"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func statusFor(kind pricing.ErrorKind) int {
	switch kind {
	case "":
		return http.StatusOK
	case pricing.KindValidation:
		return http.StatusBadRequest
	case pricing.KindNotFound:
		return http.StatusNotFound
	case pricing.KindDownstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeResult sends the pricing result body as-is; only the status code depends on the error kind.
func writeResult[T any](c *gin.Context, res pricing.Result[T]) {
	writeJSON(c, statusFor(res.Kind()), res)
}
