// Package api exposes the interview agent and the proctoring monitor over
// HTTP. Handlers are thin: bind the request, call the core, map errors.
package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/mockstage/pkg/agent"
	"github.com/mockstage/mockstage/pkg/proctor"
)

// Server represents the HTTP server
type Server struct {
	agent   *agent.Agent
	monitor *proctor.Monitor
	db      *sql.DB // nil when running on the in-memory store
	logger  *slog.Logger

	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates the API server and wires its routes
func NewServer(ag *agent.Agent, monitor *proctor.Monitor, db *sql.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		agent:   ag,
		monitor: monitor,
		db:      db,
		logger:  logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/interviews", s.StartInterview)
		v1.POST("/interviews/:id/answers", s.SubmitAnswer)
		v1.POST("/interviews/:id/complete", s.CompleteInterview)
		v1.POST("/interviews/:id/cancel", s.CancelInterview)
		v1.GET("/interviews/:id/status", s.InterviewStatus)
		v1.GET("/interviews/:id/next", s.NextQuestion)
		v1.GET("/interviews/:id/adjustment", s.DifficultyAdjustment)
		v1.GET("/interviews/:id/insights", s.InterviewInsights)

		v1.POST("/proctor/sessions", s.CreateProctorSession)
		v1.POST("/proctor/sessions/:id/reference", s.SetReference)
		v1.POST("/proctor/sessions/:id/frames", s.AnalyzeFrame)
		v1.POST("/proctor/sessions/:id/tab-switch", s.TabSwitch)
		v1.POST("/proctor/sessions/:id/end", s.EndProctorSession)
	}

	s.router = router
	return s
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and serves until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
