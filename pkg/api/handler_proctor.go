package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/mockstage/pkg/proctor"
)

// CreateProctorSession handles POST /api/v1/proctor/sessions
func (s *Server) CreateProctorSession(c *gin.Context) {
	var req CreateProctorSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := s.monitor.Start(req.UserID, req.InterviewID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateProctorSessionResponse{
		SessionID:   sessionID,
		Sensitivity: s.monitor.Sensitivity(),
	})
}

// SetReference handles POST /api/v1/proctor/sessions/:id/reference
func (s *Server) SetReference(c *gin.Context) {
	var req SetReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emotion, err := s.monitor.SetReference(c.Request.Context(), c.Param("id"), req.Image)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SetReferenceResponse{
		Registered: true,
		Emotion:    emotion,
	})
}

// AnalyzeFrame handles POST /api/v1/proctor/sessions/:id/frames
func (s *Server) AnalyzeFrame(c *gin.Context) {
	var req AnalyzeFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.monitor.AnalyzeFrame(c.Request.Context(), c.Param("id"), proctor.FrameInput{
		Image:  req.Image,
		Width:  req.Width,
		Height: req.Height,
	}, req.VerifyPerson)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TabSwitch handles POST /api/v1/proctor/sessions/:id/tab-switch
func (s *Server) TabSwitch(c *gin.Context) {
	var req TabSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	violation, err := s.monitor.TabSwitch(c.Param("id"), req.Kind)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, violation)
}

// EndProctorSession handles POST /api/v1/proctor/sessions/:id/end
func (s *Server) EndProctorSession(c *gin.Context) {
	report, err := s.monitor.End(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
