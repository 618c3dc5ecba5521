// Package models defines the records the CLI exchanges with the API and
// caches in its local session.
package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleStudent     = "student"
	RoleSiteManager = "site_manager"
)

// User is the snapshot returned by /auth/* and /users/me and persisted
// under the kongenga_user key.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	University        string    `json:"university,omitempty"`
	Year              string    `json:"year,omitempty"`
	Field             string    `json:"field,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage,omitempty"`
	Avatar            string    `json:"avatar,omitempty"`
	FavoriteJobs      []string  `json:"favoriteJobs"`
	Progress          Progress  `json:"progress"`
	CreatedAt         time.Time `json:"createdAt"`
	LastActive        time.Time `json:"lastActive"`
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FavoriteJobs = append([]string{}, u.FavoriteJobs...)
	return &c
}

// ProfileUpdate is the body of PUT /users/me; nil fields are left alone.
type ProfileUpdate struct {
	Name              *string `json:"name,omitempty"`
	University        *string `json:"university,omitempty"`
	Year              *string `json:"year,omitempty"`
	Field             *string `json:"field,omitempty"`
	PreferredLanguage *string `json:"preferredLanguage,omitempty"`
}

// ErrInvalidProgress marks a rejected progress update.
var ErrInvalidProgress = errors.New("invalid progress update")

const (
	CounterProfileComplete  = "profileComplete"
	CounterJobsExplored     = "jobsExplored"
	CounterTrainingsStarted = "trainingsStarted"
	CounterSkillsAssessed   = "skillsAssessed"
)

type Progress struct {
	ProfileComplete  int `json:"profileComplete"`
	JobsExplored     int `json:"jobsExplored"`
	TrainingsStarted int `json:"trainingsStarted"`
	SkillsAssessed   int `json:"skillsAssessed"`
}

func DefaultProgress() Progress {
	return Progress{ProfileComplete: 30}
}

// Merge applies absolute counter values; counters absent from partial keep
// their value. On error p is returned unchanged.
func (p Progress) Merge(partial map[string]int) (Progress, error) {
	out := p
	for name, v := range partial {
		if v < 0 {
			return p, fmt.Errorf("%w: %s must be non-negative", ErrInvalidProgress, name)
		}
		switch name {
		case CounterProfileComplete:
			out.ProfileComplete = v
		case CounterJobsExplored:
			out.JobsExplored = v
		case CounterTrainingsStarted:
			out.TrainingsStarted = v
		case CounterSkillsAssessed:
			out.SkillsAssessed = v
		default:
			return p, fmt.Errorf("%w: unknown counter %q", ErrInvalidProgress, name)
		}
	}
	return out, nil
}
