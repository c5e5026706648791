package api

import "github.com/mockstage/mockstage/pkg/models"

// StartInterviewRequest is the body for POST /api/v1/interviews
type StartInterviewRequest struct {
	UserID        string               `json:"user_id" binding:"required"`
	InterviewType models.InterviewType `json:"interview_type" binding:"required"`
	Mode          models.InterviewMode `json:"mode"`
	Difficulty    models.Difficulty    `json:"difficulty"`
	Skills        []string             `json:"skills"`

	// InterviewID lets the caller supply its own ID; one is generated
	// when empty.
	InterviewID string `json:"interview_id"`
}

// SubmitAnswerRequest is the body for POST /api/v1/interviews/:id/answers.
// Audio and video frames arrive base64-encoded; audio features are the
// pre-extracted signal measurements the speech scorer consumes.
type SubmitAnswerRequest struct {
	QuestionOrder int                   `json:"question_order" binding:"required"`
	Text          string                `json:"text"`
	Audio         []byte                `json:"audio"`
	AudioFeatures *models.AudioFeatures `json:"audio_features"`
	VideoFrames   [][]byte              `json:"video_frames"`
	AudioRef      string                `json:"audio_ref"`
	VideoRef      string                `json:"video_ref"`
}

// CreateProctorSessionRequest is the body for POST /api/v1/proctor/sessions
type CreateProctorSessionRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	InterviewID string `json:"interview_id"`
}

// SetReferenceRequest carries the base64-encoded reference photo
type SetReferenceRequest struct {
	Image []byte `json:"image" binding:"required"`
}

// AnalyzeFrameRequest is the body for POST /api/v1/proctor/sessions/:id/frames
type AnalyzeFrameRequest struct {
	Image        []byte `json:"image" binding:"required"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	VerifyPerson bool   `json:"verify_person"`
}

// TabSwitchRequest reports a frontend focus-loss event
type TabSwitchRequest struct {
	Kind models.TabEvent `json:"kind" binding:"required"`
}
