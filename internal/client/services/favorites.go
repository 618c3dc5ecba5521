package services

import (
	"context"
	"fmt"

	"github.com/kongenga/kongenga/internal/client/models"
)

// Actions reported by POST /users/favorites/{jobId}.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// ToggleFavorite flips jobID on the server and applies the action the
// server reports. Unauthenticated calls do nothing. On error the local set
// is untouched.
func (s *SessionStore) ToggleFavorite(ctx context.Context, jobID string) (string, error) {
	gen, ok := s.current()
	if !ok {
		return "", nil
	}

	res, err := s.api.ToggleFavorite(ctx, jobID)
	if err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return "", err
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return "", ErrSessionChanged
	}
	switch res.Action {
	case ActionAdded:
		if _, ok := s.favorites[jobID]; !ok {
			s.favorites[jobID] = struct{}{}
			s.user.FavoriteJobs = append(s.user.FavoriteJobs, jobID)
		}
	case ActionRemoved:
		if _, ok := s.favorites[jobID]; ok {
			delete(s.favorites, jobID)
			s.user.FavoriteJobs = without(s.user.FavoriteJobs, jobID)
		}
	default:
		s.mu.Unlock()
		return "", fmt.Errorf("unexpected favorite action %q", res.Action)
	}
	s.mu.Unlock()

	s.persist(ctx)
	return res.Action, nil
}

// IsFavorite reports whether jobID is in the last confirmed favorites set.
func (s *SessionStore) IsFavorite(jobID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[jobID]
	return ok
}

// FavoriteIDs returns the favorites in the order they were added.
func (s *SessionStore) FavoriteIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return append([]string{}, s.user.FavoriteJobs...)
}

// Favorites fetches the favorite jobs and reconciles the local set with
// them.
func (s *SessionStore) Favorites(ctx context.Context) ([]*models.Job, error) {
	gen, ok := s.current()
	if !ok {
		return nil, nil
	}

	jobs, err := s.api.Favorites(ctx)
	if err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return nil, err
	}
	if s.replaceFavorites(gen, jobIDs(jobs)) {
		s.persist(ctx)
	}
	return jobs, nil
}

func (s *SessionStore) loadFavorites(ctx context.Context, gen uint64) {
	jobs, err := s.api.Favorites(ctx)
	if err != nil {
		s.logger.Warn(ctx, "load favorites", "error", err)
		s.checkUnauthorized(ctx, gen, err)
		return
	}
	if s.replaceFavorites(gen, jobIDs(jobs)) {
		s.persist(ctx)
	}
}

func (s *SessionStore) replaceFavorites(gen uint64, ids []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.user == nil {
		return false
	}
	s.setFavoritesLocked(ids)
	return true
}

func (s *SessionStore) setFavoritesLocked(ids []string) {
	s.favorites = make(map[string]struct{}, len(ids))
	list := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := s.favorites[id]; dup {
			continue
		}
		s.favorites[id] = struct{}{}
		list = append(list, id)
	}
	if s.user != nil {
		s.user.FavoriteJobs = list
	}
}

func jobIDs(jobs []*models.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
