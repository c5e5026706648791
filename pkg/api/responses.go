package api

import (
	"time"

	"github.com/mockstage/mockstage/pkg/models"
)

// StartInterviewResponse is returned by POST /api/v1/interviews
type StartInterviewResponse struct {
	InterviewID string              `json:"interview_id"`
	Difficulty  models.Difficulty   `json:"difficulty"`
	Questions   []models.Question   `json:"questions"`
	Profile     *models.UserHistory `json:"profile,omitempty"`
	StartedAt   time.Time           `json:"started_at"`
}

// SubmitAnswerResponse is returned by POST /api/v1/interviews/:id/answers
type SubmitAnswerResponse struct {
	Evaluation   models.Evaluation         `json:"evaluation"`
	Feedback     models.RealtimeFeedback   `json:"realtime_feedback"`
	Performance  models.RunningPerformance `json:"current_performance"`
	NextQuestion *models.Question          `json:"next_question,omitempty"`
}

// NextQuestionResponse is returned by GET /api/v1/interviews/:id/next.
// Question is null once every question has an answer.
type NextQuestionResponse struct {
	Question *models.Question `json:"question"`
}

// DifficultyAdjustmentResponse is returned by GET
// /api/v1/interviews/:id/adjustment. Difficulty is the tier the remaining
// questions should move to when Adjust is true, the current tier otherwise.
type DifficultyAdjustmentResponse struct {
	Adjust     bool              `json:"adjust"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// CreateProctorSessionResponse is returned by POST /api/v1/proctor/sessions
type CreateProctorSessionResponse struct {
	SessionID   string             `json:"session_id"`
	Sensitivity models.Sensitivity `json:"sensitivity"`
}

// SetReferenceResponse confirms reference registration, with the emotion
// reading of the photo when an emotion provider is wired.
type SetReferenceResponse struct {
	Registered bool                 `json:"registered"`
	Emotion    *models.ImageEmotion `json:"emotion,omitempty"`
}
