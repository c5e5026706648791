// Package store persists finished interviews and serves per-user history
// back to the agent. Two implementations exist: PostgreSQL for production
// and an in-memory store for tests and single-node development.
package store

import (
	"context"
	"sort"
	"time"

	"github.com/mockstage/mockstage/pkg/models"
)

// InterviewRecord is the persisted outcome of one finished interview
type InterviewRecord struct {
	ID          string
	UserID      string
	Type        models.InterviewType
	Mode        models.InterviewMode
	Difficulty  models.Difficulty
	Status      string // completed | cancelled
	Scores      models.FinalScores
	WeakAreas   []models.WeakArea
	StrongAreas []models.StrongArea
	Suggestions []models.Suggestion
	StartedAt   time.Time
	CompletedAt time.Time
}

// ResponseRecord is one persisted per-question answer
type ResponseRecord struct {
	InterviewID     string
	QuestionOrder   int
	QuestionText    string
	Category        string
	AnswerText      string
	ContentScore    float64
	RelevanceScore  float64
	ClarityScore    float64
	FluencyScore    float64
	ConfidenceScore float64
	AudioRef        string
	VideoRef        string
}

// Store is the persistence seam the core writes through on completion and
// reads history from at session start.
type Store interface {
	SaveInterview(ctx context.Context, rec InterviewRecord) error
	SaveResponses(ctx context.Context, recs []ResponseRecord) error

	// CompletedInterviews returns a user's completed interviews, oldest
	// first. interviewType narrows the result when non-empty.
	CompletedInterviews(ctx context.Context, userID string, interviewType models.InterviewType) ([]InterviewRecord, error)

	Close() error
}

// Profile thresholds mirror the area classification used at report time
const (
	profileWeakThreshold   = 70.0
	profileStrongThreshold = 80.0
)

// BuildProfile derives a user's adaptive profile from their completed
// interviews. Topics averaging below 70 across sessions are weak, at or
// above 80 strong; the three weakest become the next focus areas.
func BuildProfile(records []InterviewRecord) *models.UserHistory {
	if len(records) == 0 {
		return nil
	}

	type topicStats struct {
		name   string
		scores []float64
	}
	collect := func(pick func(InterviewRecord) []topicStats) []topicStats {
		byName := map[string]*topicStats{}
		var order []string
		for _, rec := range records {
			for _, t := range pick(rec) {
				s, ok := byName[t.name]
				if !ok {
					s = &topicStats{name: t.name}
					byName[t.name] = s
					order = append(order, t.name)
				}
				s.scores = append(s.scores, t.scores...)
			}
		}
		out := make([]topicStats, 0, len(order))
		for _, name := range order {
			out = append(out, *byName[name])
		}
		return out
	}

	weakStats := collect(func(rec InterviewRecord) []topicStats {
		var out []topicStats
		for _, area := range rec.WeakAreas {
			out = append(out, topicStats{area.Area, []float64{area.AverageScore}})
		}
		return out
	})
	strongStats := collect(func(rec InterviewRecord) []topicStats {
		var out []topicStats
		for _, area := range rec.StrongAreas {
			out = append(out, topicStats{area.Area, []float64{area.AverageScore}})
		}
		return out
	})

	type scored struct {
		name string
		avg  float64
	}
	var weak, strong []scored
	for _, t := range weakStats {
		if avg := avg(t.scores); avg < profileWeakThreshold {
			weak = append(weak, scored{t.name, avg})
		}
	}
	for _, t := range strongStats {
		if avg := avg(t.scores); avg >= profileStrongThreshold {
			strong = append(strong, scored{t.name, avg})
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].avg < weak[j].avg })
	sort.SliceStable(strong, func(i, j int) bool { return strong[i].avg > strong[j].avg })

	history := &models.UserHistory{
		WeakTopics:      []string{},
		StrongTopics:    []string{},
		FocusAreas:      []string{},
		TotalInterviews: len(records),
	}
	for _, w := range weak {
		history.WeakTopics = append(history.WeakTopics, w.name)
	}
	for _, s := range strong {
		history.StrongTopics = append(history.StrongTopics, s.name)
	}
	for i, w := range weak {
		if i == 3 {
			break
		}
		history.FocusAreas = append(history.FocusAreas, w.name)
	}

	var total float64
	for _, rec := range records {
		total += rec.Scores.OverallScore
	}
	history.AverageScore = total / float64(len(records))

	// Improvement rate compares the second half of the history with the
	// first.
	if len(records) >= 2 {
		half := len(records) / 2
		firstAvg := avgOverall(records[:half])
		secondAvg := avgOverall(records[half:])
		if firstAvg > 0 {
			history.ImprovementRate = (secondAvg - firstAvg) / firstAvg * 100
		}
	}

	return history
}

func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func avgOverall(records []InterviewRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Scores.OverallScore
	}
	return sum / float64(len(records))
}
