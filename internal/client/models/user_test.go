package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressMerge_KeepsAbsentCounters(t *testing.T) {
	p := DefaultProgress()

	p, err := p.Merge(map[string]int{CounterJobsExplored: 5})
	require.NoError(t, err)
	p, err = p.Merge(map[string]int{CounterTrainingsStarted: 2})
	require.NoError(t, err)

	assert.Equal(t, Progress{ProfileComplete: 30, JobsExplored: 5, TrainingsStarted: 2}, p)
}

func TestProgressMerge_Rejects(t *testing.T) {
	p := Progress{JobsExplored: 1}

	for name, partial := range map[string]map[string]int{
		"negative": {CounterJobsExplored: -1},
		"unknown":  {"coursesFinished": 3},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := p.Merge(partial)
			require.ErrorIs(t, err, ErrInvalidProgress)
			assert.Equal(t, p, got)
		})
	}
}

func TestUserClone_DoesNotShareFavorites(t *testing.T) {
	u := &User{ID: "u-1", FavoriteJobs: []string{"a"}}
	c := u.Clone()
	c.FavoriteJobs[0] = "b"

	assert.Equal(t, "a", u.FavoriteJobs[0])
	assert.Nil(t, (*User)(nil).Clone())
}

func TestLocalizedTextIn(t *testing.T) {
	txt := LocalizedText{"fr": "Développeur", "en": "Developer"}

	assert.Equal(t, "Developer", txt.In("en"))
	assert.Equal(t, "Développeur", txt.In("sw"))
	assert.Equal(t, "Mosali", LocalizedText{"ln": "Mosali"}.In("en"))
	assert.Equal(t, "", LocalizedText{}.In("fr"))
}
