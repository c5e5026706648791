package agent

import (
	"sync"
	"time"

	"github.com/mockstage/mockstage/pkg/models"
)

// questionState tracks one question's lifecycle inside a live session
type questionState struct {
	models.Question
	Answered   bool
	AnswerText string
	AudioRef   string
	VideoRef   string
	Evaluation *models.Evaluation
}

// session is the mutable state of one live interview. All fields are
// protected by mu; collaborator calls must release it first.
type session struct {
	mu sync.Mutex

	id         string
	userID     string
	kind       models.InterviewType
	mode       models.InterviewMode
	difficulty models.Difficulty
	phase      models.Phase
	closed     bool
	startedAt  time.Time

	questions []questionState
	answered  int

	contentScores    []float64
	relevanceScores  []float64
	clarityScores    []float64
	fluencyScores    []float64
	confidenceScores []float64

	weakAreas   orderedSet
	strongAreas orderedSet

	observations []models.Observation
	decisions    []models.Decision
}

// advance moves the session forward one phase. Phases are monotone; any
// other jump is rejected.
func (s *session) advance(to models.Phase) error {
	if s.closed {
		return ErrSessionClosed
	}
	if to != s.phase+1 {
		return ErrInvalidTransition
	}
	s.phase = to
	return nil
}

func (s *session) observe(text string, data map[string]any) {
	s.observations = append(s.observations, models.Observation{
		Timestamp: time.Now(),
		Phase:     s.phase,
		Text:      text,
		Data:      data,
	})
}

func (s *session) decide(decision, reasoning, action string) {
	s.decisions = append(s.decisions, models.Decision{
		Timestamp: time.Now(),
		Phase:     s.phase,
		Decision:  decision,
		Reasoning: reasoning,
		Action:    action,
	})
}

// nextUnanswered returns a copy of the first pending question, nil when
// every question has an answer.
func (s *session) nextUnanswered() *models.Question {
	for i := range s.questions {
		if !s.questions[i].Answered {
			q := s.questions[i].Question
			return &q
		}
	}
	return nil
}

// performance snapshots the running per-metric averages
func (s *session) performance() models.RunningPerformance {
	return models.RunningPerformance{
		QuestionsAnswered:  s.answered,
		TotalQuestions:     len(s.questions),
		AvgContentScore:    average(s.contentScores),
		AvgRelevanceScore:  average(s.relevanceScores),
		AvgClarityScore:    average(s.clarityScores),
		AvgFluencyScore:    average(s.fluencyScores),
		AvgConfidenceScore: average(s.confidenceScores),
		WeakAreas:          s.weakAreas.items(),
		StrongAreas:        s.strongAreas.items(),
	}
}

// answeredEvaluations returns the aligned evaluation and question slices
// for every answered question, in question order.
func (s *session) answeredEvaluations() ([]models.Evaluation, []models.Question) {
	var evals []models.Evaluation
	var questions []models.Question
	for i := range s.questions {
		if s.questions[i].Answered && s.questions[i].Evaluation != nil {
			evals = append(evals, *s.questions[i].Evaluation)
			questions = append(questions, s.questions[i].Question)
		}
	}
	return evals, questions
}

// orderedSet is a deduplicated string list that preserves insertion order
type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func (o *orderedSet) add(item string) {
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, ok := o.seen[item]; ok {
		return
	}
	o.seen[item] = struct{}{}
	o.order = append(o.order, item)
}

func (o *orderedSet) items() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
