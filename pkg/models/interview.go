package models

import "time"

// Question is a single interview question. Questions are created when the
// session starts and never mutated afterwards.
type Question struct {
	ID               int          `json:"id"`
	Text             string       `json:"text"`
	Type             QuestionType `json:"type"`
	Category         string       `json:"category"`
	Difficulty       Difficulty   `json:"difficulty"`
	ExpectedKeywords []string     `json:"expected_keywords"`
	OrderNumber      int          `json:"order_number"` // 1-based
}

// KeywordAnalysis records which expected keywords an answer covered
type KeywordAnalysis struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// Evaluation is the immutable result of scoring one answer.
type Evaluation struct {
	ContentScore   float64         `json:"content_score"`
	RelevanceScore float64         `json:"relevance_score"`
	Keywords       KeywordAnalysis `json:"keywords"`
	Sentiment      Sentiment       `json:"sentiment"`
	CoherenceScore float64         `json:"coherence_score"`
	WordCount      int             `json:"word_count"`
	SentenceCount  int             `json:"sentence_count"`
	Feedback       string          `json:"feedback"`
	Suggestions    []string        `json:"suggestions"`

	// Optional channels, present only when audio/video was supplied.
	Speech  *SpeechMetrics  `json:"speech,omitempty"`
	Emotion *EmotionMetrics `json:"emotion,omitempty"`

	// TranscriptionBackend identifies which speech backend produced the
	// transcript used for speech scoring, empty when no audio was scored.
	TranscriptionBackend string `json:"transcription_backend,omitempty"`
}

// AudioFeatures carries the signal-level features the speech scorer consumes.
// RMS and ZCR are per-frame sequences computed with the given hop length.
type AudioFeatures struct {
	DurationSeconds float64   `json:"duration_seconds"`
	RMS             []float64 `json:"rms"`
	ZCR             []float64 `json:"zcr"`
	SampleRate      int       `json:"sample_rate"`
	HopLength       int       `json:"hop_length"`
}

// PauseStats summarizes detected silences longer than half a second
type PauseStats struct {
	Count          int     `json:"count"`
	AvgDuration    float64 `json:"avg_duration"`
	TotalPauseTime float64 `json:"total_pause_time"`
}

// FillerStats summarizes filler-word usage in a transcript
type FillerStats struct {
	Detected   map[string]int `json:"detected"`
	TotalCount int            `json:"total_count"`
	Percentage float64        `json:"percentage"`
}

// SpeechMetrics is the speech scorer's output for one answer
type SpeechMetrics struct {
	ClarityScore      float64     `json:"clarity_score"`
	FluencyScore      float64     `json:"fluency_score"`
	SpeakingRateWPM   float64     `json:"speaking_rate_wpm"`
	Fillers           FillerStats `json:"filler_words"`
	Pauses            PauseStats  `json:"pauses"`
	AudioQuality      float64     `json:"audio_quality"`
	VolumeConsistency float64     `json:"volume_consistency"`
	Feedback          string      `json:"feedback"`
}

// EmotionFrame is one sampled video frame as seen by the emotion scorer.
// When FaceDetected is false the Emotions map is ignored.
type EmotionFrame struct {
	TimestampSeconds float64            `json:"timestamp_seconds"`
	FaceDetected     bool               `json:"face_detected"`
	Emotions         map[string]float64 `json:"emotions,omitempty"`
	Dominant         string             `json:"dominant,omitempty"`
}

// ImageEmotion is the emotion reading of a single still image
type ImageEmotion struct {
	FaceDetected    bool               `json:"face_detected"`
	ConfidenceScore float64            `json:"confidence_score"`
	DominantEmotion string             `json:"dominant_emotion,omitempty"`
	Distribution    map[string]float64 `json:"emotion_distribution,omitempty"`
	Feedback        string             `json:"feedback,omitempty"`
}

// EmotionMetrics is the emotion scorer's output for one answer
type EmotionMetrics struct {
	ConfidenceScore    float64            `json:"confidence_score"`
	DominantEmotion    string             `json:"dominant_emotion"`
	Distribution       map[string]float64 `json:"emotion_distribution"`
	EmotionalStability float64            `json:"emotional_stability"`
	FaceVisibility     float64            `json:"face_visibility"`
	Feedback           string             `json:"feedback"`
}

// UserHistory is the persisted per-user profile consulted at session start
type UserHistory struct {
	WeakTopics      []string `json:"weak_topics"`
	StrongTopics    []string `json:"strong_topics"`
	FocusAreas      []string `json:"focus_areas"`
	AverageScore    float64  `json:"average_score,omitempty"`
	TotalInterviews int      `json:"total_interviews"`
	ImprovementRate float64  `json:"improvement_rate,omitempty"`
}

// Observation is one entry of the agent's observation log
type Observation struct {
	Timestamp time.Time      `json:"timestamp"`
	Phase     Phase          `json:"phase"`
	Text      string         `json:"observation"`
	Data      map[string]any `json:"data,omitempty"`
}

// Decision is one entry of the agent's decision log
type Decision struct {
	Timestamp time.Time `json:"timestamp"`
	Phase     Phase     `json:"phase"`
	Decision  string    `json:"decision"`
	Reasoning string    `json:"reasoning"`
	Action    string    `json:"action,omitempty"`
}

// RunningPerformance snapshots the cumulative per-metric averages mid-session
type RunningPerformance struct {
	QuestionsAnswered  int      `json:"questions_answered"`
	TotalQuestions     int      `json:"total_questions"`
	AvgContentScore    float64  `json:"avg_content_score"`
	AvgRelevanceScore  float64  `json:"avg_relevance_score"`
	AvgClarityScore    float64  `json:"avg_clarity_score"`
	AvgFluencyScore    float64  `json:"avg_fluency_score"`
	AvgConfidenceScore float64  `json:"avg_confidence_score"`
	WeakAreas          []string `json:"weak_areas"`
	StrongAreas        []string `json:"strong_areas"`
}

// RealtimeFeedback is returned after each answer submission
type RealtimeFeedback struct {
	Level   FeedbackLevel `json:"level"`
	Message string        `json:"message"`
	Tips    []string      `json:"tips"`
}

// InterviewStatus is the lightweight status snapshot for a live session
type InterviewStatus struct {
	InterviewID        string             `json:"interview_id"`
	Phase              Phase              `json:"phase"`
	QuestionsTotal     int                `json:"questions_total"`
	QuestionsAnswered  int                `json:"questions_answered"`
	CurrentPerformance RunningPerformance `json:"current_performance"`
	StartedAt          time.Time          `json:"started_at"`
}
