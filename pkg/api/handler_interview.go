package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/mockstage/pkg/agent"
)

// StartInterview handles POST /api/v1/interviews
func (s *Server) StartInterview(c *gin.Context) {
	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.agent.Start(c.Request.Context(), agent.StartParams{
		InterviewID: req.InterviewID,
		UserID:      req.UserID,
		Type:        req.InterviewType,
		Mode:        req.Mode,
		Difficulty:  req.Difficulty,
		Skills:      req.Skills,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StartInterviewResponse{
		InterviewID: result.InterviewID,
		Difficulty:  result.Difficulty,
		Questions:   result.Questions,
		Profile:     result.Profile,
		StartedAt:   result.StartedAt,
	})
}

// SubmitAnswer handles POST /api/v1/interviews/:id/answers
func (s *Server) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.agent.Submit(c.Request.Context(), c.Param("id"), agent.Submission{
		QuestionOrder: req.QuestionOrder,
		Text:          req.Text,
		Audio:         req.Audio,
		AudioFeatures: req.AudioFeatures,
		VideoFrames:   req.VideoFrames,
		AudioRef:      req.AudioRef,
		VideoRef:      req.VideoRef,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitAnswerResponse{
		Evaluation:   result.Evaluation,
		Feedback:     result.Feedback,
		Performance:  result.Performance,
		NextQuestion: result.NextQuestion,
	})
}

// CompleteInterview handles POST /api/v1/interviews/:id/complete
func (s *Server) CompleteInterview(c *gin.Context) {
	report, err := s.agent.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CancelInterview handles POST /api/v1/interviews/:id/cancel
func (s *Server) CancelInterview(c *gin.Context) {
	if err := s.agent.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// InterviewStatus handles GET /api/v1/interviews/:id/status
func (s *Server) InterviewStatus(c *gin.Context) {
	status, err := s.agent.Status(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// NextQuestion handles GET /api/v1/interviews/:id/next
func (s *Server) NextQuestion(c *gin.Context) {
	question, err := s.agent.NextQuestion(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NextQuestionResponse{Question: question})
}

// DifficultyAdjustment handles GET /api/v1/interviews/:id/adjustment
func (s *Server) DifficultyAdjustment(c *gin.Context) {
	adjust, difficulty, err := s.agent.ShouldAdjust(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DifficultyAdjustmentResponse{
		Adjust:     adjust,
		Difficulty: difficulty,
	})
}

// InterviewInsights handles GET /api/v1/interviews/:id/insights
func (s *Server) InterviewInsights(c *gin.Context) {
	insights, err := s.agent.Insights(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
