package scoring

import (
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// EmotionScorer aggregates per-frame emotion classifications into a
// confidence assessment for one answer. It is stateless and safe for
// concurrent use.
type EmotionScorer struct{}

// NewEmotionScorer creates an emotion scorer
func NewEmotionScorer() *EmotionScorer {
	return &EmotionScorer{}
}

var (
	confidenceEmotions = []string{"happy", "neutral"}
	stressEmotions     = []string{"fear", "sad", "angry"}
)

// Score aggregates a sampled emotion timeline. An empty timeline yields the
// zero metrics with guidance to keep the face visible; a timeline with
// faces but no emotion data yields neutral midpoints.
func (s *EmotionScorer) Score(timeline []models.EmotionFrame) models.EmotionMetrics {
	if len(timeline) == 0 {
		return models.EmotionMetrics{
			DominantEmotion: "unknown",
			Distribution:    map[string]float64{},
			Feedback:        "Could not analyze emotions. Ensure your face is visible in the camera.",
		}
	}

	facesDetected := 0
	var valid []models.EmotionFrame
	for _, frame := range timeline {
		if frame.FaceDetected {
			facesDetected++
			if len(frame.Emotions) > 0 {
				valid = append(valid, frame)
			}
		}
	}
	faceVisibility := float64(facesDetected) / float64(len(timeline)) * 100

	if len(valid) == 0 {
		return models.EmotionMetrics{
			ConfidenceScore:    50,
			DominantEmotion:    "neutral",
			Distribution:       map[string]float64{},
			EmotionalStability: 50,
			FaceVisibility:     faceVisibility,
			Feedback:           "Limited emotion data available. Try to keep your face visible to the camera.",
		}
	}

	// Average each emotion across the valid frames.
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, frame := range valid {
		for emotion, score := range frame.Emotions {
			totals[emotion] += score
			counts[emotion]++
		}
	}
	distribution := make(map[string]float64, len(totals))
	for emotion, total := range totals {
		distribution[emotion] = round2(total / float64(counts[emotion]))
	}

	dominant := dominantEmotion(distribution)

	// Confidence is the share of calm emotions against stress emotions.
	var confident, stressed float64
	for _, e := range confidenceEmotions {
		confident += distribution[e]
	}
	for _, e := range stressEmotions {
		stressed += distribution[e]
	}
	confidence := 50.0
	if total := confident + stressed; total > 0 {
		confidence = confident / total * 100
	}

	// Stability counts dominant-emotion switches between consecutive frames.
	stability := 80.0
	if len(valid) > 1 {
		changes := 0
		for i := 1; i < len(valid); i++ {
			if valid[i].Dominant != valid[i-1].Dominant {
				changes++
			}
		}
		stability = (1 - float64(changes)/float64(len(valid)-1)) * 100
	}

	return models.EmotionMetrics{
		ConfidenceScore:    round2(confidence),
		DominantEmotion:    dominant,
		Distribution:       distribution,
		EmotionalStability: round2(stability),
		FaceVisibility:     round2(faceVisibility),
		Feedback:           emotionFeedback(confidence, dominant, stability, faceVisibility),
	}
}

// ScoreImage reads a single still frame, such as the proctoring reference
// photo. Confidence weighs the calm emotions only; a frame without a face
// scores zero.
func (s *EmotionScorer) ScoreImage(frame models.EmotionFrame) models.ImageEmotion {
	if !frame.FaceDetected {
		return models.ImageEmotion{
			Feedback: "No face detected in the image",
		}
	}

	confidence := (frame.Emotions["happy"] + frame.Emotions["neutral"]) * 50

	dominant := frame.Dominant
	if dominant == "" {
		dominant = dominantEmotion(frame.Emotions)
	}

	return models.ImageEmotion{
		FaceDetected:    true,
		ConfidenceScore: round2(confidence),
		DominantEmotion: dominant,
		Distribution:    frame.Emotions,
	}
}

// dominantEmotion picks the highest-scoring emotion, breaking ties by name
// so the result is deterministic.
func dominantEmotion(distribution map[string]float64) string {
	best := ""
	bestScore := -1.0
	for emotion, score := range distribution {
		if score > bestScore || (score == bestScore && emotion < best) {
			best = emotion
			bestScore = score
		}
	}
	return best
}

func emotionFeedback(confidence float64, dominant string, stability, faceVisibility float64) string {
	var parts []string

	switch {
	case confidence >= 70:
		parts = append(parts, "You demonstrated good confidence throughout the interview.")
	case confidence >= 50:
		parts = append(parts, "Your confidence level was moderate. Try to appear more relaxed and positive.")
	default:
		parts = append(parts, "Work on appearing more confident. Practice relaxation techniques before interviews.")
	}

	switch dominant {
	case "happy", "neutral":
		parts = append(parts, "Your emotional state was appropriate for an interview.")
	case "surprise":
		parts = append(parts, "You showed surprise reactions. Try to maintain composure.")
	case "fear", "sad", "angry":
		parts = append(parts, "Try to manage stress better and maintain a positive demeanor.")
	}

	if stability < 60 {
		parts = append(parts, "Your emotions fluctuated significantly. Practice maintaining emotional stability.")
	}

	if faceVisibility < 80 {
		parts = append(parts, "Ensure your face is clearly visible to the camera throughout the interview.")
	}

	return strings.Join(parts, " ")
}
