package agent

import "sync"

// Registry tracks live sessions in memory
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
	}
}

func (r *Registry) add(s *session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.id]; ok {
		return ErrAlreadyExists
	}
	r.sessions[s.id] = s
	return nil
}

func (r *Registry) get(interviewID string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) remove(interviewID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, interviewID)
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
