package scoring

import (
	"testing"

	"github.com/mockstage/mockstage/pkg/models"
	"github.com/stretchr/testify/assert"
)

func frame(ts float64, emotions map[string]float64) models.EmotionFrame {
	f := models.EmotionFrame{TimestampSeconds: ts, FaceDetected: true, Emotions: emotions}
	f.Dominant = dominantEmotion(emotions)
	return f
}

func TestEmotionScorer_ScoreImage(t *testing.T) {
	scorer := NewEmotionScorer()

	t.Run("calm weighted confidence", func(t *testing.T) {
		reading := scorer.ScoreImage(models.EmotionFrame{
			FaceDetected: true,
			Emotions:     map[string]float64{"happy": 0.8, "neutral": 0.1, "fear": 0.1},
			Dominant:     "happy",
		})

		assert.True(t, reading.FaceDetected)
		assert.Equal(t, 45.0, reading.ConfidenceScore)
		assert.Equal(t, "happy", reading.DominantEmotion)
		assert.Equal(t, map[string]float64{"happy": 0.8, "neutral": 0.1, "fear": 0.1}, reading.Distribution)
		assert.Empty(t, reading.Feedback)
	})

	t.Run("dominant derived when the classifier omits it", func(t *testing.T) {
		reading := scorer.ScoreImage(models.EmotionFrame{
			FaceDetected: true,
			Emotions:     map[string]float64{"neutral": 0.7, "sad": 0.3},
		})

		assert.Equal(t, "neutral", reading.DominantEmotion)
		assert.Equal(t, 35.0, reading.ConfidenceScore)
	})

	t.Run("no face scores zero", func(t *testing.T) {
		reading := scorer.ScoreImage(models.EmotionFrame{FaceDetected: false})

		assert.False(t, reading.FaceDetected)
		assert.Zero(t, reading.ConfidenceScore)
		assert.Empty(t, reading.DominantEmotion)
		assert.Equal(t, "No face detected in the image", reading.Feedback)
	})
}

func TestEmotionScorer_Score(t *testing.T) {
	scorer := NewEmotionScorer()

	t.Run("empty timeline", func(t *testing.T) {
		metrics := scorer.Score(nil)
		assert.Zero(t, metrics.ConfidenceScore)
		assert.Equal(t, "unknown", metrics.DominantEmotion)
		assert.Zero(t, metrics.FaceVisibility)
		assert.Contains(t, metrics.Feedback, "Ensure your face is visible")
	})

	t.Run("faces without emotion data yield midpoints", func(t *testing.T) {
		timeline := []models.EmotionFrame{
			{TimestampSeconds: 0, FaceDetected: true},
			{TimestampSeconds: 2, FaceDetected: false},
		}
		metrics := scorer.Score(timeline)
		assert.Equal(t, 50.0, metrics.ConfidenceScore)
		assert.Equal(t, "neutral", metrics.DominantEmotion)
		assert.Equal(t, 50.0, metrics.EmotionalStability)
		assert.Equal(t, 50.0, metrics.FaceVisibility)
	})

	t.Run("calm timeline scores confident and stable", func(t *testing.T) {
		timeline := []models.EmotionFrame{
			frame(0, map[string]float64{"happy": 0.6, "neutral": 0.3, "fear": 0.1}),
			frame(2, map[string]float64{"happy": 0.7, "neutral": 0.2, "fear": 0.1}),
			frame(4, map[string]float64{"happy": 0.5, "neutral": 0.4, "fear": 0.1}),
		}
		metrics := scorer.Score(timeline)

		assert.Equal(t, "happy", metrics.DominantEmotion)
		assert.Greater(t, metrics.ConfidenceScore, 70.0)
		assert.Equal(t, 100.0, metrics.EmotionalStability)
		assert.Equal(t, 100.0, metrics.FaceVisibility)
		assert.Contains(t, metrics.Feedback, "good confidence")
	})

	t.Run("stressed timeline scores low confidence", func(t *testing.T) {
		timeline := []models.EmotionFrame{
			frame(0, map[string]float64{"fear": 0.6, "sad": 0.3, "neutral": 0.1}),
			frame(2, map[string]float64{"angry": 0.5, "fear": 0.4, "neutral": 0.1}),
		}
		metrics := scorer.Score(timeline)

		assert.Less(t, metrics.ConfidenceScore, 50.0)
		assert.Contains(t, metrics.Feedback, "manage stress")
	})

	t.Run("dominant switches lower stability", func(t *testing.T) {
		timeline := []models.EmotionFrame{
			frame(0, map[string]float64{"happy": 0.9}),
			frame(2, map[string]float64{"sad": 0.9}),
			frame(4, map[string]float64{"happy": 0.9}),
		}
		metrics := scorer.Score(timeline)
		assert.Zero(t, metrics.EmotionalStability)
		assert.Contains(t, metrics.Feedback, "fluctuated significantly")
	})

	t.Run("partial face visibility is flagged", func(t *testing.T) {
		timeline := []models.EmotionFrame{
			frame(0, map[string]float64{"neutral": 0.9}),
			{TimestampSeconds: 2, FaceDetected: false},
			{TimestampSeconds: 4, FaceDetected: false},
		}
		metrics := scorer.Score(timeline)
		assert.InDelta(t, 33.33, metrics.FaceVisibility, 0.01)
		assert.Contains(t, metrics.Feedback, "clearly visible to the camera")
	})
}

func TestDominantEmotion(t *testing.T) {
	t.Run("ties break alphabetically", func(t *testing.T) {
		assert.Equal(t, "happy", dominantEmotion(map[string]float64{"neutral": 0.5, "happy": 0.5}))
	})
	t.Run("empty distribution", func(t *testing.T) {
		assert.Equal(t, "", dominantEmotion(map[string]float64{}))
	})
}
