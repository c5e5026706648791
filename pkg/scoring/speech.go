package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/mockstage/mockstage/pkg/models"
)

// SpeechScorer grades clarity and fluency from the transcript and the
// signal-level features of the recorded answer. It is stateless and safe
// for concurrent use.
type SpeechScorer struct{}

// NewSpeechScorer creates a speech scorer
func NewSpeechScorer() *SpeechScorer {
	return &SpeechScorer{}
}

var fillerWords = []string{
	"um", "uh", "like", "you know", "basically", "actually",
	"literally", "sort of", "kind of", "i mean",
}

// audioProperties are the intermediate measurements derived from the raw
// features before scoring.
type audioProperties struct {
	duration          float64
	volumeConsistency float64
	quality           float64
	pauses            models.PauseStats
}

// Score evaluates one spoken answer. The transcript comes from the
// transcription provider; features carry the per-frame RMS and ZCR
// sequences of the same recording.
func (s *SpeechScorer) Score(transcript string, features models.AudioFeatures) models.SpeechMetrics {
	props := analyzeAudio(features)

	clarity := clarityScore(props)
	fluency := fluencyScore(transcript, props)
	fillers := detectFillerWords(transcript)
	rate := speakingRate(transcript, props.duration)

	return models.SpeechMetrics{
		ClarityScore:      round2(clarity),
		FluencyScore:      round2(fluency),
		SpeakingRateWPM:   round2(rate),
		Fillers:           fillers,
		Pauses:            props.pauses,
		AudioQuality:      props.quality,
		VolumeConsistency: props.volumeConsistency,
		Feedback:          speechFeedback(clarity, fluency, rate, fillers),
	}
}

// analyzeAudio derives volume consistency, quality and pause statistics
// from the frame-level features. Degenerate input gets neutral midpoints
// so scoring still produces something usable.
func analyzeAudio(features models.AudioFeatures) audioProperties {
	if len(features.RMS) == 0 || features.SampleRate <= 0 {
		return audioProperties{
			duration:          features.DurationSeconds,
			volumeConsistency: 50,
			quality:           50,
		}
	}

	avgVolume := mean(features.RMS)
	volumeStd := stddev(features.RMS, avgVolume)
	var volumeConsistency float64
	if avgVolume > 0 {
		volumeConsistency = 100 - math.Min(volumeStd/avgVolume*100, 100)
	}

	// Pauses are runs of frames below 30% of the average level lasting
	// longer than half a second.
	hop := features.HopLength
	if hop <= 0 {
		hop = 512
	}
	frameDuration := float64(hop) / float64(features.SampleRate)
	threshold := avgVolume * 0.3

	var pauses models.PauseStats
	var pauseDurations []float64
	run := 0
	for _, level := range features.RMS {
		if level < threshold {
			run++
			continue
		}
		if run > 0 {
			if d := float64(run) * frameDuration; d > 0.5 {
				pauseDurations = append(pauseDurations, d)
			}
			run = 0
		}
	}
	pauses.Count = len(pauseDurations)
	for _, d := range pauseDurations {
		pauses.TotalPauseTime += d
	}
	if len(pauseDurations) > 0 {
		pauses.AvgDuration = pauses.TotalPauseTime / float64(len(pauseDurations))
	}

	// Quality approximates signal cleanliness from the zero crossing rate.
	quality := 50.0
	if len(features.ZCR) > 0 {
		avgZCR := mean(features.ZCR)
		quality = math.Min(100, (1-math.Min(avgZCR, 0.5))*100)
	}

	return audioProperties{
		duration:          features.DurationSeconds,
		volumeConsistency: volumeConsistency,
		quality:           quality,
		pauses:            pauses,
	}
}

// clarityScore weighs audio quality, volume consistency and pause cadence.
// The pause band rewards two to four pauses per minute.
func clarityScore(props audioProperties) float64 {
	score := props.quality/100*40 + props.volumeConsistency/100*30

	pauseScore := 30.0
	if props.duration > 0 {
		pauseRate := float64(props.pauses.Count) / (props.duration / 60)
		switch {
		case pauseRate >= 2 && pauseRate <= 4:
			pauseScore = 30
		case pauseRate < 2:
			pauseScore = 20 + pauseRate/2*10
		default:
			pauseScore = math.Max(0, 30-(pauseRate-4)*5)
		}
	}
	score += pauseScore

	return math.Min(score, 100)
}

// fluencyScore weighs speaking rate, pause ratio and vocabulary variety.
// Bracketed transcripts are transcription failures and score zero.
func fluencyScore(transcript string, props audioProperties) float64 {
	if transcript == "" || strings.HasPrefix(transcript, "[") {
		return 0
	}
	if props.duration == 0 {
		return 0
	}

	words := strings.Fields(transcript)
	wordCount := len(words)

	var score float64

	// Speaking rate, up to 40 points, optimum 120-160 wpm.
	wpm := float64(wordCount) / props.duration * 60
	switch {
	case wpm >= 120 && wpm <= 160:
		score += 40
	case (wpm >= 100 && wpm < 120) || (wpm > 160 && wpm <= 180):
		score += 30
	case wpm < 100:
		score += wpm / 100 * 20
	default:
		score += math.Max(0, 40-(wpm-180)*0.5)
	}

	// Pause ratio, up to 30 points, optimum 15-25% of the recording.
	pauseRatio := props.pauses.TotalPauseTime / props.duration
	switch {
	case pauseRatio >= 0.15 && pauseRatio <= 0.25:
		score += 30
	case (pauseRatio >= 0.10 && pauseRatio < 0.15) || (pauseRatio > 0.25 && pauseRatio <= 0.30):
		score += 20
	default:
		score += 10
	}

	// Word variety, up to 30 points.
	if wordCount > 0 {
		unique := make(map[string]struct{}, wordCount)
		for _, w := range words {
			unique[w] = struct{}{}
		}
		score += math.Min(30, float64(len(unique))/float64(wordCount)*60)
	}

	return math.Min(score, 100)
}

func detectFillerWords(transcript string) models.FillerStats {
	lower := strings.ToLower(transcript)
	stats := models.FillerStats{Detected: map[string]int{}}
	for _, filler := range fillerWords {
		if count := strings.Count(lower, filler); count > 0 {
			stats.Detected[filler] = count
			stats.TotalCount += count
		}
	}
	if words := strings.Fields(transcript); len(words) > 0 {
		stats.Percentage = round2(float64(stats.TotalCount) / float64(len(words)) * 100)
	}
	return stats
}

func speakingRate(transcript string, duration float64) float64 {
	if duration == 0 {
		return 0
	}
	return float64(len(strings.Fields(transcript))) / duration * 60
}

func speechFeedback(clarity, fluency, rate float64, fillers models.FillerStats) string {
	var parts []string

	switch avg := (clarity + fluency) / 2; {
	case avg >= 80:
		parts = append(parts, "Excellent speech clarity and fluency!")
	case avg >= 60:
		parts = append(parts, "Good speech quality with some areas for improvement.")
	default:
		parts = append(parts, "Your speech quality needs significant improvement.")
	}

	if clarity < 70 {
		parts = append(parts, "Try to speak more clearly and maintain consistent volume.")
	}

	if fluency < 70 {
		if rate < 100 {
			parts = append(parts, "Try to speak a bit faster for better fluency.")
		} else if rate > 180 {
			parts = append(parts, "Slow down slightly to improve clarity.")
		}
	}

	if fillers.Percentage > 5 {
		parts = append(parts, fmt.Sprintf("Reduce filler words (detected %d times).", fillers.TotalCount))
	}

	return strings.Join(parts, " ")
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}
