// README: HTTP router registration.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"towpricing/internal/http/handlers"
	"towpricing/internal/http/middleware"
	"towpricing/internal/modules/pricing"
)

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

func NewRouter(pricingService *pricing.Service, log *zap.Logger, checks map[string]HealthCheck) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	pricingHandler := handlers.NewPricingHandler(pricingService)
	api := r.Group("/api/pricing")
	{
		api.POST("/client-estimate", pricingHandler.ClientEstimate)
		api.POST("/asp-estimate", pricingHandler.AspEstimate)
		api.POST("/travelled-km", pricingHandler.TravelledKm)
		api.POST("/route-deviation", pricingHandler.RouteDeviation)
		api.POST("/activity-costs", pricingHandler.ActivityCosts)
	}

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		c.JSON(status, report)
	})

	return r
}
