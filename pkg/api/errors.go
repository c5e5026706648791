package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/mockstage/pkg/agent"
	"github.com/mockstage/mockstage/pkg/proctor"
)

// writeError maps core errors to HTTP error responses
func (s *Server) writeError(c *gin.Context, err error) {
	var agentValidation *agent.ValidationError
	var proctorValidation *proctor.ValidationError

	switch {
	case errors.As(err, &agentValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": agentValidation.Message,
			"field": agentValidation.Field,
		})
	case errors.As(err, &proctorValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": proctorValidation.Message,
			"field": proctorValidation.Field,
		})
	case errors.Is(err, agent.ErrNotFound) || errors.Is(err, proctor.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, agent.ErrAlreadyExists),
		errors.Is(err, agent.ErrInvalidTransition),
		errors.Is(err, agent.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, agent.ErrSessionClosed) || errors.Is(err, proctor.ErrSessionClosed):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, agent.ErrCollaboratorUnavailable) || errors.Is(err, proctor.ErrCollaboratorUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.logger.Error("unexpected core error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
