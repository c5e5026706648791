// Package providers declares the external-collaborator interfaces the core
// depends on. Adapters are expected to be stateless and reentrant; all
// blocking calls take a context so callers can bound them with deadlines.
package providers

import (
	"context"

	"github.com/mockstage/mockstage/pkg/models"
)

// Transcript is the transcription provider's result
type Transcript struct {
	Text            string
	DurationSeconds float64
	Backend         string
}

// Transcriber converts recorded answer audio to text. Silence yields an
// empty Text, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (Transcript, error)
}

// FaceDetector locates faces in a video frame
type FaceDetector interface {
	Detect(ctx context.Context, frame []byte) ([]models.FaceDetection, error)
}

// FaceMesh computes dense facial landmarks, iris points included, for each
// face in a frame.
type FaceMesh interface {
	Landmarks(ctx context.Context, frame []byte) ([][]models.Landmark, error)
}

// FaceEmbedder produces an identity embedding for the most prominent face
// in a frame. A nil vector means no usable face.
type FaceEmbedder interface {
	Embed(ctx context.Context, frame []byte) ([]float64, error)
}

// EmotionClassifier scores the emotions visible on the most prominent face
// in a sampled frame.
type EmotionClassifier interface {
	Classify(ctx context.Context, frame []byte) (models.EmotionFrame, error)
}

// HistoryReader exposes persisted per-user performance to the agent.
// Recommend picks a starting difficulty from past results; LoadProfile may
// return nil when the user has no history.
type HistoryReader interface {
	Recommend(ctx context.Context, userID string, interviewType models.InterviewType) (models.Difficulty, error)
	LoadProfile(ctx context.Context, userID string) (*models.UserHistory, error)
}
