package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mockstage/mockstage/pkg/models"
)

// Memory is an in-memory Store for tests and single-node development
type Memory struct {
	mu         sync.RWMutex
	interviews map[string]InterviewRecord
	responses  map[string][]ResponseRecord
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		interviews: make(map[string]InterviewRecord),
		responses:  make(map[string][]ResponseRecord),
	}
}

func (m *Memory) SaveInterview(_ context.Context, rec InterviewRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews[rec.ID] = rec
	return nil
}

func (m *Memory) SaveResponses(_ context.Context, recs []ResponseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		m.responses[rec.InterviewID] = append(m.responses[rec.InterviewID], rec)
	}
	return nil
}

func (m *Memory) CompletedInterviews(_ context.Context, userID string, interviewType models.InterviewType) ([]InterviewRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []InterviewRecord
	for _, rec := range m.interviews {
		if rec.UserID != userID || rec.Status != "completed" {
			continue
		}
		if interviewType != "" && rec.Type != interviewType {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

// Responses returns the saved answers for one interview, for tests
func (m *Memory) Responses(interviewID string) []ResponseRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ResponseRecord(nil), m.responses[interviewID]...)
}

func (m *Memory) Close() error { return nil }
