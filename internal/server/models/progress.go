package models

import "fmt"

// Progress counter names as they appear on the wire.
const (
	CounterProfileComplete  = "profileComplete"
	CounterJobsExplored     = "jobsExplored"
	CounterTrainingsStarted = "trainingsStarted"
	CounterSkillsAssessed   = "skillsAssessed"
)

// Progress is the per-user record of engagement counters.
type Progress struct {
	ProfileComplete  int `json:"profileComplete"`
	JobsExplored     int `json:"jobsExplored"`
	TrainingsStarted int `json:"trainingsStarted"`
	SkillsAssessed   int `json:"skillsAssessed"`
}

// DefaultProgress is the record every new account starts with.
func DefaultProgress() Progress {
	return Progress{ProfileComplete: 30}
}

// Merge overwrites the counters named in partial with their absolute values.
// Unknown names and negative values are rejected and leave p unchanged.
func (p Progress) Merge(partial map[string]int) (Progress, error) {
	out := p
	for name, v := range partial {
		if v < 0 {
			return p, fmt.Errorf("counter %q must be non-negative, got %d", name, v)
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
			return p, fmt.Errorf("unknown counter %q", name)
		}
	}
	return out, nil
}

// Validate checks that every counter is non-negative.
func (p Progress) Validate() error {
	if p.ProfileComplete < 0 || p.JobsExplored < 0 || p.TrainingsStarted < 0 || p.SkillsAssessed < 0 {
		return fmt.Errorf("progress counters must be non-negative")
	}
	return nil
}
