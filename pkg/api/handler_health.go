package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/mockstage/pkg/store"
	"github.com/mockstage/mockstage/pkg/version"
)

// healthCheckTimeout bounds the database ping inside the health handler
const healthCheckTimeout = 5 * time.Second

// Health handles GET /healthz
func (s *Server) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"version":          version.Full(),
		"live_interviews":  s.agent.Registry().Count(),
		"proctor_sessions": s.monitor.Count(),
		"proctor_features": s.monitor.Features(),
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		dbHealth, err := store.Health(ctx, s.db)
		body["database"] = dbHealth
		if err != nil {
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}
