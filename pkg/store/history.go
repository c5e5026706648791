package store

import (
	"context"
	"fmt"

	"github.com/mockstage/mockstage/pkg/models"
)

// History adapts a Store to the read-only view the agent consults at
// session start.
type History struct {
	store Store
}

// NewHistory creates a history reader backed by the given store
func NewHistory(s Store) *History {
	return &History{store: s}
}

// recentWindow is how many past interviews drive the recommendation
const recentWindow = 3

// Recommend picks a starting difficulty from the user's last interviews of
// the same type. New users start at medium; afterwards the average of the
// last three overall scores decides.
func (h *History) Recommend(ctx context.Context, userID string, interviewType models.InterviewType) (models.Difficulty, error) {
	records, err := h.store.CompletedInterviews(ctx, userID, interviewType)
	if err != nil {
		return "", fmt.Errorf("failed to load interview history: %w", err)
	}
	if len(records) < 1 {
		return models.DifficultyMedium, nil
	}

	if len(records) > recentWindow {
		records = records[len(records)-recentWindow:]
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Scores.OverallScore
	}
	avg := sum / float64(len(records))

	switch {
	case avg >= 80:
		return models.DifficultyHard, nil
	case avg >= 60:
		return models.DifficultyMedium, nil
	default:
		return models.DifficultyEasy, nil
	}
}

// LoadProfile derives the user's adaptive profile across all interview
// types. Returns nil when the user has no completed interviews.
func (h *History) LoadProfile(ctx context.Context, userID string) (*models.UserHistory, error) {
	records, err := h.store.CompletedInterviews(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load interview history: %w", err)
	}
	return BuildProfile(records), nil
}
