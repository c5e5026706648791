// Package mock provides in-memory provider implementations for tests and
// for running the service without real speech/vision backends.
package mock

import (
	"context"
	"sync"

	"github.com/mockstage/mockstage/pkg/models"
	"github.com/mockstage/mockstage/pkg/providers"
)

// Transcriber returns a fixed transcript
type Transcriber struct {
	Result providers.Transcript
	Err    error
}

func (t *Transcriber) Transcribe(_ context.Context, _ []byte) (providers.Transcript, error) {
	if t.Err != nil {
		return providers.Transcript{}, t.Err
	}
	return t.Result, nil
}

// FaceDetector returns a fixed detection list
type FaceDetector struct {
	Detections []models.FaceDetection
	Err        error
}

func (d *FaceDetector) Detect(_ context.Context, _ []byte) ([]models.FaceDetection, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Detections, nil
}

// FaceMesh returns a fixed landmark set per face
type FaceMesh struct {
	Faces [][]models.Landmark
	Err   error
}

func (m *FaceMesh) Landmarks(_ context.Context, _ []byte) ([][]models.Landmark, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Faces, nil
}

// FaceEmbedder returns a fixed embedding vector
type FaceEmbedder struct {
	Vector []float64
	Err    error
}

func (e *FaceEmbedder) Embed(_ context.Context, _ []byte) ([]float64, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Vector, nil
}

// EmotionClassifier replays a scripted emotion timeline, one frame per call
type EmotionClassifier struct {
	Frames []models.EmotionFrame
	Err    error

	mu   sync.Mutex
	next int
}

func (c *EmotionClassifier) Classify(_ context.Context, _ []byte) (models.EmotionFrame, error) {
	if c.Err != nil {
		return models.EmotionFrame{}, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next >= len(c.Frames) {
		return models.EmotionFrame{FaceDetected: false}, nil
	}
	frame := c.Frames[c.next]
	c.next++
	return frame, nil
}

// HistoryReader serves a fixed recommendation and profile
type HistoryReader struct {
	Difficulty models.Difficulty
	Profile    *models.UserHistory
	Err        error
}

func (h *HistoryReader) Recommend(_ context.Context, _ string, _ models.InterviewType) (models.Difficulty, error) {
	if h.Err != nil {
		return "", h.Err
	}
	if h.Difficulty == "" {
		return models.DifficultyMedium, nil
	}
	return h.Difficulty, nil
}

func (h *HistoryReader) LoadProfile(_ context.Context, _ string) (*models.UserHistory, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	return h.Profile, nil
}
