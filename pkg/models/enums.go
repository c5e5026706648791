package models

// Difficulty defines question and interview difficulty levels
type Difficulty string

const (
	// DifficultyEasy is the entry difficulty tier
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium is the default difficulty tier
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard is the most demanding difficulty tier
	DifficultyHard Difficulty = "hard"
)

// IsValid checks if the difficulty is valid
func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// InterviewType defines supported interview types
type InterviewType string

const (
	// InterviewTypeGeneral covers mixed behavioral/situational interviews
	InterviewTypeGeneral InterviewType = "general"
	// InterviewTypeTechnical covers skill-targeted technical interviews
	InterviewTypeTechnical InterviewType = "technical"
	// InterviewTypeHR covers HR screening interviews
	InterviewTypeHR InterviewType = "hr"
	// InterviewTypeUPSC covers civil-services board interviews
	InterviewTypeUPSC InterviewType = "upsc"
)

// IsValid checks if the interview type is valid
func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTypeGeneral, InterviewTypeTechnical, InterviewTypeHR, InterviewTypeUPSC:
		return true
	default:
		return false
	}
}

// InterviewMode selects the question-generation regime
type InterviewMode string

const (
	// ModeStandard uses the per-type difficulty mix
	ModeStandard InterviewMode = "standard"
	// ModeUPSC samples five civil-services sub-categories
	ModeUPSC InterviewMode = "upsc"
)

// IsValid checks if the interview mode is valid
func (m InterviewMode) IsValid() bool {
	return m == ModeStandard || m == ModeUPSC
}

// QuestionType tags individual questions
type QuestionType string

const (
	QuestionTypeBehavioral  QuestionType = "behavioral"
	QuestionTypeTechnical   QuestionType = "technical"
	QuestionTypeSituational QuestionType = "situational"
	QuestionTypeHR          QuestionType = "hr"
	QuestionTypeUPSC        QuestionType = "upsc"
)

// IsValid checks if the question type is valid
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeBehavioral, QuestionTypeTechnical, QuestionTypeSituational,
		QuestionTypeHR, QuestionTypeUPSC:
		return true
	default:
		return false
	}
}

// Phase is the interview agent's scheduling state. Transitions are
// monotone; the agent rejects any operation that would move a session
// backwards.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseQuestionGen
	PhaseAnswerCollection
	PhaseAnalysis
	PhaseSuggestionGen
	PhaseReportGen
	PhaseCompleted
)

var phaseNames = map[Phase]string{
	PhaseInit:             "initialization",
	PhaseQuestionGen:      "question_generation",
	PhaseAnswerCollection: "answer_collection",
	PhaseAnalysis:         "analysis",
	PhaseSuggestionGen:    "suggestion_generation",
	PhaseReportGen:        "report_generation",
	PhaseCompleted:        "completed",
}

// String returns the wire name of the phase
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so phases render as names in JSON
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Sentiment labels the tone of an answer
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Severity grades proctoring violations
type Severity string

const (
	// SeverityLow is a warning only
	SeverityLow Severity = "low"
	// SeverityMedium flags the session for review
	SeverityMedium Severity = "medium"
	// SeverityHigh indicates potential disqualification
	SeverityHigh Severity = "high"
	// SeverityCritical requires immediate action
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// ViolationKind identifies the proctoring rule that was broken
type ViolationKind string

const (
	ViolationNoFace          ViolationKind = "no_face"
	ViolationMultipleFaces   ViolationKind = "multiple_faces"
	ViolationFaceNotCentered ViolationKind = "face_not_centered"
	ViolationLookingAway     ViolationKind = "looking_away"
	ViolationDifferentPerson ViolationKind = "different_person"
	ViolationFaceObscured    ViolationKind = "face_obscured"
	ViolationTabSwitch       ViolationKind = "tab_switch"
	ViolationWindowBlur      ViolationKind = "window_blur"
)

// Sensitivity names a bundle of proctoring thresholds
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// IsValid checks if the sensitivity profile is valid
func (s Sensitivity) IsValid() bool {
	return s == SensitivityLow || s == SensitivityMedium || s == SensitivityHigh
}

// FeedbackLevel buckets a per-answer score for real-time feedback
type FeedbackLevel string

const (
	FeedbackExcellent        FeedbackLevel = "excellent"
	FeedbackGood             FeedbackLevel = "good"
	FeedbackFair             FeedbackLevel = "fair"
	FeedbackNeedsImprovement FeedbackLevel = "needs_improvement"
)

// TabEvent distinguishes the two frontend-reported focus events
type TabEvent string

const (
	TabEventSwitch TabEvent = "switch"
	TabEventBlur   TabEvent = "blur"
)

// IsValid checks if the tab event kind is valid
func (e TabEvent) IsValid() bool {
	return e == TabEventSwitch || e == TabEventBlur
}

// GazeDirection is the coarse horizontal gaze estimate
type GazeDirection string

const (
	GazeLeft   GazeDirection = "left"
	GazeRight  GazeDirection = "right"
	GazeCenter GazeDirection = "center"
)
