package sessions

import (
	"testing"
	"time"

	"github.com/recallab/tetromino/pkg/game"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RequiresDuration(t *testing.T) {
	_, err := NewSession(NewSessionOptions{Seed: 1})
	require.Error(t, err)
}

func TestSession_ExpiresAfterDuration(t *testing.T) {
	s, err := NewSession(NewSessionOptions{Seed: 1, Duration: time.Second})
	require.NoError(t, err)

	var snap *gametypes.Snapshot
	for i := 0; i < 10; i++ {
		snap, err = s.Advance(nil, 100)
		require.NoError(t, err)
	}

	assert.True(t, s.Done())
	assert.Equal(t, gametypes.StatusTimeExpired, snap.Status)
	require.NotNil(t, s.Result())
	assert.Equal(t, s.ID(), s.Result().ID)
	assert.Equal(t, int64(1000), s.Result().DurationMS)

	// Advancing a finished session is a no-op.
	again, err := s.Advance(nil, 1000)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

func TestSession_TopOutCountsLossAndContinues(t *testing.T) {
	// A cramped board tops out after a handful of hard drops.
	cfg := game.DefaultConfig(1)
	cfg.BoardWidth = 5
	cfg.BoardHeight = 4

	s, err := NewSession(NewSessionOptions{
		Seed:     1,
		Duration: time.Hour,
		Config:   cfg,
	})
	require.NoError(t, err)

	drop := []gametypes.InputEvent{{Type: gametypes.InputHardDrop}}
	var snap *gametypes.Snapshot
	for i := 0; i < 20; i++ {
		snap, err = s.Advance(drop, 10)
		require.NoError(t, err)
	}

	assert.False(t, s.Done())
	assert.Greater(t, s.losses, 0, "stacking a 5x4 board must top out")
	// After a loss the session keeps running on a fresh board.
	assert.Equal(t, gametypes.StatusFalling, snap.Status)

	result := s.Stop()
	assert.Equal(t, s.losses, result.Losses)
}

func TestSession_QuitFinishes(t *testing.T) {
	s, err := NewSession(NewSessionOptions{Seed: 3, Duration: time.Hour})
	require.NoError(t, err)

	snap, err := s.Advance([]gametypes.InputEvent{{Type: gametypes.InputQuit}}, 10)
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Equal(t, gametypes.StatusTimeExpired, snap.Status)
}

func TestSession_StopIsIdempotent(t *testing.T) {
	s, err := NewSession(NewSessionOptions{Seed: 4, Duration: time.Hour})
	require.NoError(t, err)

	first := s.Stop()
	require.NotNil(t, first)
	assert.Equal(t, first, s.Stop())
}

func TestResult_Model(t *testing.T) {
	started := time.Unix(1700000000, 0)
	r := &Result{
		ID:         "abc",
		Seed:       7,
		StartedAt:  started,
		DurationMS: 30000,
		Lines:      12,
		Losses:     2,
		Score:      480,
		MaxLevel:   2,
	}

	m := r.Model()
	assert.Equal(t, "abc", m.ID)
	assert.Equal(t, started.UnixMilli(), m.CreatedAt)
	assert.Equal(t, int64(30000), m.DurationMS)
	assert.Equal(t, 12, m.Lines)
	assert.Equal(t, 2, m.Losses)
	assert.Equal(t, 480, m.Score)
	assert.Equal(t, 2, m.MaxLevel)
}

func TestSession_ProgressTracksRunningTotals(t *testing.T) {
	s, err := NewSession(NewSessionOptions{Seed: 5, Duration: time.Hour})
	require.NoError(t, err)

	p := s.Progress()
	require.NotNil(t, p)
	assert.Equal(t, s.ID(), p.ID)
	assert.Equal(t, 0, p.Lines)
	assert.Equal(t, 1, p.MaxLevel)

	s.Stop()
	assert.Equal(t, s.Result(), s.Progress())
}
