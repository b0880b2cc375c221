package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// registerHealthRoutes adds /health. Without checks it always answers OK.
func registerHealthRoutes(r *gin.Engine, checks map[string]portsrepo.HealthChecker) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed",
					slog.String("component", name), slog.String("error", err.Error()))
				components[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}

		body := gin.H{"status": "OK", "components": components}
		if status != http.StatusOK {
			body["status"] = "DEGRADED"
		}
		c.JSON(status, body)
	})
}
