// Package agent runs the interview session lifecycle: question selection,
// per-answer multi-channel scoring, adaptive difficulty, and final report
// synthesis. Sessions live in memory while active and are persisted on
// completion.
package agent

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mockstage/mockstage/pkg/catalog"
	"github.com/mockstage/mockstage/pkg/insight"
	"github.com/mockstage/mockstage/pkg/models"
	"github.com/mockstage/mockstage/pkg/providers"
	"github.com/mockstage/mockstage/pkg/scoring"
	"github.com/mockstage/mockstage/pkg/store"
)

const (
	// Per-answer area classification thresholds
	weakScoreThreshold   = 65.0
	strongScoreThreshold = 80.0

	// Adaptive difficulty needs a minimum sample before acting
	adjustMinAnswers    = 3
	adjustUpThreshold   = 85.0
	adjustDownThreshold = 45.0

	// How much of the reasoning log the final report exposes
	reportObservationTail = 10
	reportDecisionTail    = 5

	// Default remediation plan length
	learningPathWeeks = 4

	// avoidTopicsMinStrong gates topic avoidance until the user has shown
	// consistent strength.
	avoidTopicsMinStrong = 3
)

// Tunables are the deployment-adjustable grading thresholds. Zero values
// are replaced with the defaults above.
type Tunables struct {
	WeakScoreThreshold   float64
	StrongScoreThreshold float64
	AdjustMinAnswers     int
	AdjustUpThreshold    float64
	AdjustDownThreshold  float64
	AdaptiveDifficulty   bool
}

// DefaultTunables returns the standard grading curve with adaptive
// difficulty enabled.
func DefaultTunables() Tunables {
	return Tunables{
		WeakScoreThreshold:   weakScoreThreshold,
		StrongScoreThreshold: strongScoreThreshold,
		AdjustMinAnswers:     adjustMinAnswers,
		AdjustUpThreshold:    adjustUpThreshold,
		AdjustDownThreshold:  adjustDownThreshold,
		AdaptiveDifficulty:   true,
	}
}

// Agent orchestrates interview sessions
type Agent struct {
	catalog       *catalog.Catalog
	textScorer    *scoring.TextScorer
	speechScorer  *scoring.SpeechScorer
	emotionScorer *scoring.EmotionScorer

	transcriber providers.Transcriber
	emotions    providers.EmotionClassifier
	history     providers.HistoryReader
	store       store.Store

	tunables Tunables
	registry *Registry
	logger   *slog.Logger
}

// New creates an agent wired to its collaborators
func New(cat *catalog.Catalog, transcriber providers.Transcriber, emotions providers.EmotionClassifier, history providers.HistoryReader, st store.Store, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		catalog:       cat,
		textScorer:    scoring.NewTextScorer(),
		speechScorer:  scoring.NewSpeechScorer(),
		emotionScorer: scoring.NewEmotionScorer(),
		transcriber:   transcriber,
		emotions:      emotions,
		history:       history,
		store:         st,
		tunables:      DefaultTunables(),
		registry:      NewRegistry(),
		logger:        logger,
	}
}

// SetTunables overrides the grading thresholds. Call before serving;
// zero-valued fields keep their defaults.
func (a *Agent) SetTunables(t Tunables) {
	defaults := DefaultTunables()
	if t.WeakScoreThreshold <= 0 {
		t.WeakScoreThreshold = defaults.WeakScoreThreshold
	}
	if t.StrongScoreThreshold <= 0 {
		t.StrongScoreThreshold = defaults.StrongScoreThreshold
	}
	if t.AdjustMinAnswers <= 0 {
		t.AdjustMinAnswers = defaults.AdjustMinAnswers
	}
	if t.AdjustUpThreshold <= 0 {
		t.AdjustUpThreshold = defaults.AdjustUpThreshold
	}
	if t.AdjustDownThreshold <= 0 {
		t.AdjustDownThreshold = defaults.AdjustDownThreshold
	}
	a.tunables = t
}

// Registry exposes the live-session registry for health reporting
func (a *Agent) Registry() *Registry {
	return a.registry
}

// StartParams are the inputs to session creation. Difficulty is optional;
// when empty the user's history picks the starting tier.
type StartParams struct {
	InterviewID string
	UserID      string
	Type        models.InterviewType
	Mode        models.InterviewMode
	Difficulty  models.Difficulty
	Skills      []string
}

// StartResult reports the created session back to the caller
type StartResult struct {
	InterviewID string
	Difficulty  models.Difficulty
	Questions   []models.Question
	Profile     *models.UserHistory
	StartedAt   time.Time
}

// Start creates a live session: it consults the user's history for the
// starting difficulty and focus areas, selects the question set, and
// registers the session for answer collection.
func (a *Agent) Start(ctx context.Context, p StartParams) (*StartResult, error) {
	if p.UserID == "" {
		return nil, NewValidationError("user_id", "must not be empty")
	}
	if !p.Type.IsValid() {
		return nil, NewValidationError("interview_type", "unknown interview type")
	}
	if p.Mode == "" {
		p.Mode = models.ModeStandard
	}
	if !p.Mode.IsValid() {
		return nil, NewValidationError("mode", "unknown interview mode")
	}
	if p.Difficulty != "" && !p.Difficulty.IsValid() {
		return nil, NewValidationError("difficulty", "unknown difficulty")
	}

	interviewID := p.InterviewID
	if interviewID == "" {
		interviewID = uuid.New().String()
	}
	log := a.logger.With("interview_id", interviewID, "user_id", p.UserID)

	difficulty := p.Difficulty
	if difficulty == "" {
		recommended, err := a.history.Recommend(ctx, p.UserID, p.Type)
		if err != nil {
			log.Warn("history unavailable, starting at medium", "error", err)
			recommended = models.DifficultyMedium
		}
		difficulty = recommended
	}

	profile, err := a.history.LoadProfile(ctx, p.UserID)
	if err != nil {
		log.Warn("failed to load user profile", "error", err)
		profile = nil
	}
	var focusAreas, avoidTopics []string
	if profile != nil {
		focusAreas = profile.WeakTopics
		if len(profile.StrongTopics) > avoidTopicsMinStrong {
			avoidTopics = profile.StrongTopics
		}
	}

	s := &session{
		id:         interviewID,
		userID:     p.UserID,
		kind:       p.Type,
		mode:       p.Mode,
		difficulty: difficulty,
		phase:      models.PhaseInit,
		startedAt:  time.Now(),
	}
	s.observe("Interview session initialized", map[string]any{
		"interview_type": p.Type,
		"difficulty":     difficulty,
	})
	if p.Difficulty == "" {
		s.decide("starting difficulty "+string(difficulty),
			"derived from the user's recent interview history",
			"select question difficulty mix")
	}

	if err := s.advance(models.PhaseQuestionGen); err != nil {
		return nil, err
	}
	questions := a.catalog.Generate(catalog.Params{
		Type:        p.Type,
		Mode:        p.Mode,
		Difficulty:  difficulty,
		Skills:      p.Skills,
		FocusAreas:  focusAreas,
		AvoidTopics: avoidTopics,
		Seed:        sessionSeed(interviewID),
	})
	s.questions = make([]questionState, len(questions))
	for i, q := range questions {
		s.questions[i] = questionState{Question: q}
	}
	s.observe("Question set generated", map[string]any{
		"count": len(questions),
	})

	if err := s.advance(models.PhaseAnswerCollection); err != nil {
		return nil, err
	}
	if err := a.registry.add(s); err != nil {
		return nil, err
	}
	log.Info("interview started",
		"interview_type", p.Type,
		"difficulty", difficulty,
		"questions", len(questions))

	return &StartResult{
		InterviewID: interviewID,
		Difficulty:  difficulty,
		Questions:   questions,
		Profile:     profile,
		StartedAt:   s.startedAt,
	}, nil
}

// Submission is one answer to one question. Text may be empty when Audio
// carries the answer; the transcript then stands in for the text.
type Submission struct {
	QuestionOrder int
	Text          string
	Audio         []byte
	AudioFeatures *models.AudioFeatures
	VideoFrames   [][]byte
	AudioRef      string
	VideoRef      string
}

// SubmitResult is returned after each accepted answer
type SubmitResult struct {
	Evaluation   models.Evaluation
	Feedback     models.RealtimeFeedback
	Performance  models.RunningPerformance
	NextQuestion *models.Question
}

// Submit scores one answer and commits it to the session. The session
// lock is released around collaborator calls; if the session completed or
// was cancelled in the meantime the result is discarded.
func (a *Agent) Submit(ctx context.Context, interviewID string, sub Submission) (*SubmitResult, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return nil, err
	}
	if sub.Text == "" && len(sub.Audio) == 0 {
		return nil, NewValidationError("answer", "either text or audio is required")
	}

	s.mu.Lock()
	if s.closed || s.phase > models.PhaseAnswerCollection {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.phase != models.PhaseAnswerCollection {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if sub.QuestionOrder < 1 || sub.QuestionOrder > len(s.questions) {
		s.mu.Unlock()
		return nil, NewValidationError("question_order", "out of range")
	}
	qs := &s.questions[sub.QuestionOrder-1]
	if qs.Answered {
		s.mu.Unlock()
		return nil, ErrAlreadyAnswered
	}
	question := qs.Question
	s.mu.Unlock()

	// Collaborator calls happen outside the lock so a slow backend never
	// blocks the session.
	channels, err := a.scoreChannels(ctx, interviewID, sub)
	if err != nil {
		return nil, err
	}

	answerText := sub.Text
	if answerText == "" {
		answerText = channels.transcript.Text
	}
	eval := a.textScorer.Evaluate(question.Text, answerText, question.ExpectedKeywords, question.Type)
	eval.Speech = channels.speech
	eval.Emotion = channels.emotion
	if channels.speech != nil {
		eval.TranscriptionBackend = channels.transcript.Backend
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.phase != models.PhaseAnswerCollection {
		return nil, ErrSessionClosed
	}
	if qs.Answered {
		return nil, ErrAlreadyAnswered
	}

	qs.Answered = true
	qs.AnswerText = answerText
	qs.AudioRef = sub.AudioRef
	qs.VideoRef = sub.VideoRef
	qs.Evaluation = &eval
	s.answered++

	s.contentScores = append(s.contentScores, eval.ContentScore)
	s.relevanceScores = append(s.relevanceScores, eval.RelevanceScore)
	switch {
	case channels.speech != nil:
		s.clarityScores = append(s.clarityScores, channels.speech.ClarityScore)
		s.fluencyScores = append(s.fluencyScores, channels.speech.FluencyScore)
	case channels.speechDegraded:
		s.clarityScores = append(s.clarityScores, degradedChannelScore)
		s.fluencyScores = append(s.fluencyScores, degradedChannelScore)
	}
	switch {
	case channels.emotion != nil:
		s.confidenceScores = append(s.confidenceScores, channels.emotion.ConfidenceScore)
	case channels.emotionDegraded:
		s.confidenceScores = append(s.confidenceScores, degradedChannelScore)
	}

	answerScore := (eval.ContentScore + eval.RelevanceScore) / 2
	if answerScore < a.tunables.WeakScoreThreshold {
		s.weakAreas.add(question.Category)
	} else if answerScore >= a.tunables.StrongScoreThreshold {
		s.strongAreas.add(question.Category)
	}

	s.observe("Answer received for question "+strconv.Itoa(sub.QuestionOrder), map[string]any{
		"content_score":   eval.ContentScore,
		"relevance_score": eval.RelevanceScore,
		"word_count":      eval.WordCount,
	})

	return &SubmitResult{
		Evaluation:   eval,
		Feedback:     realtimeFeedback(eval),
		Performance:  s.performance(),
		NextQuestion: s.nextUnanswered(),
	}, nil
}

// degradedChannelScore is credited when an optional channel's collaborator
// fails, so one flaky backend cannot zero a candidate's averages.
const degradedChannelScore = 70.0

// channelResults carries the optional-channel outcomes back to Submit
type channelResults struct {
	transcript      providers.Transcript
	speech          *models.SpeechMetrics
	emotion         *models.EmotionMetrics
	speechDegraded  bool
	emotionDegraded bool
}

// scoreChannels runs the speech and emotion channels in parallel. Channel
// failures degrade rather than fail the submission, except when the answer
// has no text at all and transcription was its only source.
func (a *Agent) scoreChannels(ctx context.Context, interviewID string, sub Submission) (*channelResults, error) {
	res := &channelResults{}
	log := a.logger.With("interview_id", interviewID, "question_order", sub.QuestionOrder)

	g, gctx := errgroup.WithContext(ctx)
	if len(sub.Audio) > 0 {
		g.Go(func() error {
			transcript, err := a.transcriber.Transcribe(gctx, sub.Audio)
			if err != nil {
				log.Warn("transcription failed, degrading speech channel", "error", err)
				res.speechDegraded = true
				return nil
			}
			res.transcript = transcript
			if sub.AudioFeatures != nil {
				metrics := a.speechScorer.Score(transcript.Text, *sub.AudioFeatures)
				res.speech = &metrics
			}
			return nil
		})
	}
	if len(sub.VideoFrames) > 0 {
		g.Go(func() error {
			timeline := make([]models.EmotionFrame, 0, len(sub.VideoFrames))
			for _, frame := range sub.VideoFrames {
				ef, err := a.emotions.Classify(gctx, frame)
				if err != nil {
					log.Warn("emotion classification failed, degrading emotion channel", "error", err)
					res.emotionDegraded = true
					return nil
				}
				timeline = append(timeline, ef)
			}
			metrics := a.emotionScorer.Score(timeline)
			res.emotion = &metrics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sub.Text == "" && res.speechDegraded {
		return nil, ErrCollaboratorUnavailable
	}
	return res, nil
}

// ShouldAdjust reports whether the remaining questions should move to a
// different difficulty tier, based on the content-score average so far.
func (a *Agent) ShouldAdjust(interviewID string) (bool, models.Difficulty, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return false, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !a.tunables.AdaptiveDifficulty || s.answered < a.tunables.AdjustMinAnswers {
		return false, s.difficulty, nil
	}
	avg := average(s.contentScores)
	switch {
	case avg >= a.tunables.AdjustUpThreshold && s.difficulty != models.DifficultyHard:
		s.decide("increase difficulty to hard",
			"content average "+strconv.FormatFloat(avg, 'f', 1, 64)+" after "+strconv.Itoa(s.answered)+" answers",
			"switch remaining questions to hard")
		return true, models.DifficultyHard, nil
	case avg <= a.tunables.AdjustDownThreshold && s.difficulty != models.DifficultyEasy:
		s.decide("decrease difficulty to easy",
			"content average "+strconv.FormatFloat(avg, 'f', 1, 64)+" after "+strconv.Itoa(s.answered)+" answers",
			"switch remaining questions to easy")
		return true, models.DifficultyEasy, nil
	}
	return false, s.difficulty, nil
}

// Complete walks the session through analysis, suggestion generation and
// report generation, persists the outcome, and removes the session from
// the registry.
func (a *Agent) Complete(ctx context.Context, interviewID string) (*models.FinalReport, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.phase != models.PhaseAnswerCollection {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}

	if err := s.advance(models.PhaseAnalysis); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	evals, questions := s.answeredEvaluations()
	weakAreas := insight.WeakAreas(evals, questions, insight.WeakThreshold)
	strongAreas := insight.StrongAreas(evals, questions, insight.StrongThreshold)
	skillGaps := insight.SkillGaps(weakAreas, s.kind)
	s.observe("Performance analysis complete", map[string]any{
		"weak_areas":   len(weakAreas),
		"strong_areas": len(strongAreas),
	})

	if err := s.advance(models.PhaseSuggestionGen); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	suggestions := insight.Suggestions(weakAreas, strongAreas, s.kind, evals)
	learningPath := insight.LearningPath(weakAreas, skillGaps, learningPathWeeks)
	s.observe("Suggestions generated", map[string]any{
		"count": len(suggestions),
	})

	if err := s.advance(models.PhaseReportGen); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	scores := insight.FinalScores(
		s.contentScores, s.relevanceScores,
		s.clarityScores, s.fluencyScores, s.confidenceScores,
	)
	report := &models.FinalReport{
		InterviewID:  s.id,
		CompletedAt:  time.Now(),
		Scores:       scores,
		WeakAreas:    weakAreas,
		StrongAreas:  strongAreas,
		SkillGaps:    skillGaps,
		Suggestions:  suggestions,
		LearningPath: learningPath,
		Feedback:     insight.OverallFeedback(scores),
		Insights: models.AgentInsights{
			Observations: tail(s.observations, reportObservationTail),
			KeyDecisions: tail(s.decisions, reportDecisionTail),
		},
		Statistics: models.ReportStatistics{
			TotalQuestions:        len(s.questions),
			QuestionsAnswered:     s.answered,
			AverageContentScore:   average(s.contentScores),
			AverageRelevanceScore: average(s.relevanceScores),
		},
	}

	if err := s.advance(models.PhaseCompleted); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	interviewRec, responseRecs := s.records("completed", report.CompletedAt, scores, weakAreas, strongAreas, suggestions)
	s.mu.Unlock()

	a.registry.remove(interviewID)
	a.persist(ctx, interviewRec, responseRecs)
	a.logger.Info("interview completed",
		"interview_id", interviewID,
		"overall_score", scores.OverallScore,
		"questions_answered", report.Statistics.QuestionsAnswered)

	return report, nil
}

// Cancel closes a live session without a report. In-flight submissions
// observe the closure and are discarded.
func (a *Agent) Cancel(ctx context.Context, interviewID string) error {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed || s.phase == models.PhaseCompleted {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.closed = true
	interviewRec, _ := s.records("cancelled", time.Now(), models.FinalScores{}, nil, nil, nil)
	s.mu.Unlock()

	a.registry.remove(interviewID)
	a.persist(ctx, interviewRec, nil)
	a.logger.Info("interview cancelled", "interview_id", interviewID)
	return nil
}

// Status snapshots a live session
func (a *Agent) Status(interviewID string) (*models.InterviewStatus, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return &models.InterviewStatus{
		InterviewID:        s.id,
		Phase:              s.phase,
		QuestionsTotal:     len(s.questions),
		QuestionsAnswered:  s.answered,
		CurrentPerformance: s.performance(),
		StartedAt:          s.startedAt,
	}, nil
}

// Insights exposes the session's full observation and decision logs
func (a *Agent) Insights(interviewID string) (*models.AgentInsights, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return &models.AgentInsights{
		Observations: append([]models.Observation(nil), s.observations...),
		KeyDecisions: append([]models.Decision(nil), s.decisions...),
	}, nil
}

// NextQuestion returns the first unanswered question, nil when every
// question has an answer.
func (a *Agent) NextQuestion(interviewID string) (*models.Question, error) {
	s, err := a.registry.get(interviewID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.nextUnanswered(), nil
}

// records builds the persistence rows for a finished session. Callers must
// hold the session lock.
func (s *session) records(status string, completedAt time.Time, scores models.FinalScores, weak []models.WeakArea, strong []models.StrongArea, suggestions []models.Suggestion) (store.InterviewRecord, []store.ResponseRecord) {
	rec := store.InterviewRecord{
		ID:          s.id,
		UserID:      s.userID,
		Type:        s.kind,
		Mode:        s.mode,
		Difficulty:  s.difficulty,
		Status:      status,
		Scores:      scores,
		WeakAreas:   weak,
		StrongAreas: strong,
		Suggestions: suggestions,
		StartedAt:   s.startedAt,
		CompletedAt: completedAt,
	}

	var responses []store.ResponseRecord
	for i := range s.questions {
		qs := &s.questions[i]
		if !qs.Answered || qs.Evaluation == nil {
			continue
		}
		resp := store.ResponseRecord{
			InterviewID:    s.id,
			QuestionOrder:  qs.OrderNumber,
			QuestionText:   qs.Text,
			Category:       qs.Category,
			AnswerText:     qs.AnswerText,
			ContentScore:   qs.Evaluation.ContentScore,
			RelevanceScore: qs.Evaluation.RelevanceScore,
			AudioRef:       qs.AudioRef,
			VideoRef:       qs.VideoRef,
		}
		if qs.Evaluation.Speech != nil {
			resp.ClarityScore = qs.Evaluation.Speech.ClarityScore
			resp.FluencyScore = qs.Evaluation.Speech.FluencyScore
		}
		if qs.Evaluation.Emotion != nil {
			resp.ConfidenceScore = qs.Evaluation.Emotion.ConfidenceScore
		}
		responses = append(responses, resp)
	}
	return rec, responses
}

// persist writes the finished session to the store. Persistence failures
// are logged rather than surfaced; the report was already produced.
func (a *Agent) persist(ctx context.Context, rec store.InterviewRecord, responses []store.ResponseRecord) {
	if err := a.store.SaveInterview(ctx, rec); err != nil {
		a.logger.Error("failed to persist interview", "interview_id", rec.ID, "error", err)
		return
	}
	if err := a.store.SaveResponses(ctx, responses); err != nil {
		a.logger.Error("failed to persist responses", "interview_id", rec.ID, "error", err)
	}
}

// sessionSeed derives the question-selection seed from the interview ID so
// the same session always sees the same question set.
func sessionSeed(interviewID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(interviewID))
	return int64(h.Sum64())
}

func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return append([]T(nil), items...)
	}
	return append([]T(nil), items[len(items)-n:]...)
}
