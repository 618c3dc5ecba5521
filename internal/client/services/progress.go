package services

import (
	"context"

	"github.com/kongenga/kongenga/internal/client/models"
)

// UpdateProgress sends partial (absolute counter values) and, once the
// server confirms, merges it into the cached record. Only the named
// counters travel, so overlapping calls touching different counters do not
// overwrite each other. Unauthenticated calls do nothing and return nil.
func (s *SessionStore) UpdateProgress(ctx context.Context, partial map[string]int) (*models.Progress, error) {
	s.mu.RLock()
	if s.token == "" {
		s.mu.RUnlock()
		return nil, nil
	}
	gen, current := s.gen, s.user.Progress
	s.mu.RUnlock()

	if _, err := current.Merge(partial); err != nil {
		return nil, err
	}

	if _, err := s.api.UpdateProgress(ctx, partial); err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return nil, err
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil, ErrSessionChanged
	}
	// validated above; the record under the lock may be newer than current
	merged, _ := s.user.Progress.Merge(partial)
	s.user.Progress = merged
	s.mu.Unlock()

	s.persist(ctx)
	return &merged, nil
}

// Progress returns the cached record; ok is false when unauthenticated.
func (s *SessionStore) Progress() (p models.Progress, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.Progress{}, false
	}
	return s.user.Progress, true
}
