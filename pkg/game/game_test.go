package game

import (
	"testing"

	"github.com/recallab/tetromino/pkg/game/pieces"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func events(types ...gametypes.InputType) []gametypes.InputEvent {
	evs := make([]gametypes.InputEvent, len(types))
	for i, t := range types {
		evs[i] = gametypes.InputEvent{Type: t}
	}
	return evs
}

// fixedConfig returns a configuration with a single-entry speed curve so
// gravity timing is independent of the level.
func fixedConfig(seed, intervalMS int64) gametypes.Config {
	cfg := DefaultConfig(seed)
	cfg.SpeedCurve = []int64{intervalMS}
	return cfg
}

func TestNewEngine_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *gametypes.Config)
	}{
		{
			name:   "zero width",
			modify: func(cfg *gametypes.Config) { cfg.BoardWidth = 0 },
		},
		{
			name:   "negative height",
			modify: func(cfg *gametypes.Config) { cfg.BoardHeight = -1 },
		},
		{
			name:   "empty speed curve",
			modify: func(cfg *gametypes.Config) { cfg.SpeedCurve = nil },
		},
		{
			name:   "non-positive interval",
			modify: func(cfg *gametypes.Config) { cfg.SpeedCurve = []int64{1000, 0} },
		},
		{
			name:   "missing scoring entry",
			modify: func(cfg *gametypes.Config) { delete(cfg.ScoringTable, 4) },
		},
		{
			name:   "negative level threshold",
			modify: func(cfg *gametypes.Config) { cfg.LinesPerLevel = -1 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(0)
			tt.modify(&cfg)
			_, err := NewEngine(cfg)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestNewEngine_SpawnsFirstPiece(t *testing.T) {
	e, err := NewEngine(DefaultConfig(42))
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
	require.NotNil(t, snap.Active)
	assert.Equal(t, 3, snap.Active.X)
	assert.Equal(t, -2, snap.Active.Y)
	assert.Equal(t, 0, snap.Active.Rotation)
}

func TestEngine_MoveRightShiftsPiece(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 3, Y: 0}
	before := e.board.Cells()

	snap, err := e.Tick(events(gametypes.InputMoveRight), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Active.X)

	snap, err = e.Tick(events(gametypes.InputMoveRight), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Active.X, "piece column shifted +2 from spawn")
	assert.Equal(t, 0, snap.Active.Y)
	assert.Equal(t, 0, snap.Active.Rotation)

	// The board itself is unchanged.
	assert.Equal(t, before, snap.Grid)
}

func TestEngine_RejectionIdempotent(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	// I vertical against the left wall: its single column sits at X+2, so
	// X=-2 puts it in column 0.
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: -2, Y: 5}

	snap, err := e.Tick(events(gametypes.InputMoveLeft), 0)
	require.NoError(t, err)
	assert.Equal(t, gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: -2, Y: 5}, *snap.Active)

	// A second identical attempt yields the same rejection.
	snap, err = e.Tick(events(gametypes.InputMoveLeft), 0)
	require.NoError(t, err)
	assert.Equal(t, gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: -2, Y: 5}, *snap.Active)
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
}

func TestEngine_RotationRejectedWithoutKick(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	// I vertical against the left wall: rotating to horizontal would need
	// columns X..X+3 = -2..1, which is out of bounds.
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: -2, Y: 5}

	snap, err := e.Tick(events(gametypes.InputRotateCW), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Active.Rotation)
	assert.Equal(t, -2, snap.Active.X)
}

func TestEngine_GravityTiming(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeT, Rotation: 0, X: 3, Y: 0}

	snap, err := e.Tick(nil, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Active.Y, "piece must not descend before the interval elapses")

	snap, err = e.Tick(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Active.Y, "piece descends by exactly one row at the interval")

	// Remainder carry: 2500 ms at 1000 ms per row is two rows with 500 ms
	// carried forward.
	snap, err = e.Tick(nil, 2500)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Active.Y)
	snap, err = e.Tick(nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Active.Y)
}

func TestEngine_SoftDropLocksOnReject(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	// O piece resting on the floor: cells in rows Y+2, Y+3.
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeO, Rotation: 0, X: 0, Y: 16}

	snap, err := e.Tick(events(gametypes.InputSoftDrop), 0)
	require.NoError(t, err)

	tag := gametypes.CellForShape(pieces.ShapeO)
	assert.Equal(t, tag, snap.Grid[18][1])
	assert.Equal(t, tag, snap.Grid[19][2])
	// The lock pipeline ran through to the next spawn within the tick.
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
	require.NotNil(t, snap.Active)
	assert.Equal(t, -2, snap.Active.Y)
}

func TestEngine_HardDropLocksSameTick(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeO, Rotation: 0, X: 0, Y: 0}

	snap, err := e.Tick(events(gametypes.InputHardDrop), 0)
	require.NoError(t, err)

	tag := gametypes.CellForShape(pieces.ShapeO)
	assert.Equal(t, tag, snap.Grid[18][1])
	assert.Equal(t, tag, snap.Grid[18][2])
	assert.Equal(t, tag, snap.Grid[19][1])
	assert.Equal(t, tag, snap.Grid[19][2])
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
}

func TestEngine_UnrecognizedInputSkipped(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	startX := e.active.X

	// The bogus event is skipped; the rest of the batch still applies.
	snap, err := e.Tick([]gametypes.InputEvent{
		{Type: gametypes.InputType(42)},
		{Type: gametypes.InputMoveRight},
	}, 0)
	require.NoError(t, err)

	require.NotNil(t, snap.Active)
	assert.Equal(t, startX+1, snap.Active.X)
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Lines)
	assert.Equal(t, 1, snap.Level)
}

func TestEngine_GravityDoesNotCarryAcrossLock(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 100))
	require.NoError(t, err)
	// O piece resting on the floor: the first due drop locks it.
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeO, Rotation: 0, X: 0, Y: 16}

	// Two drops are due, but the second must not move the fresh spawn.
	snap, err := e.Tick(nil, 250)
	require.NoError(t, err)

	tag := gametypes.CellForShape(pieces.ShapeO)
	assert.Equal(t, tag, snap.Grid[18][1])
	assert.Equal(t, tag, snap.Grid[19][2])
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
	require.NotNil(t, snap.Active)
	assert.Equal(t, -2, snap.Active.Y, "fresh spawn must start at the spawn row")
}

// fillRows fills the given rows except for the listed columns.
func fillRows(b *Board, rows []int, except ...int) {
	skip := make(map[int]bool)
	for _, x := range except {
		skip[x] = true
	}
	for _, y := range rows {
		for x := 0; x < b.width; x++ {
			if !skip[x] {
				b.grid[y][x] = 1
			}
		}
	}
}

func TestEngine_ScoringAsymmetry(t *testing.T) {
	// One lock clearing four rows at once.
	quad, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	fillRows(quad.board, []int{16, 17, 18, 19}, 9)
	quad.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 7, Y: 16}
	snap, err := quad.Tick(events(gametypes.InputHardDrop), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Lines)
	assert.Equal(t, 1200, snap.Score)

	// Four separate locks clearing one row each.
	singleTotal := 0
	for i := 0; i < 4; i++ {
		single, err := NewEngine(fixedConfig(7, 1000))
		require.NoError(t, err)
		fillRows(single.board, []int{19}, 9)
		single.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 7, Y: 16}
		snap, err := single.Tick(events(gametypes.InputHardDrop), 0)
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Lines)
		singleTotal += snap.Score
	}

	assert.Equal(t, 160, singleTotal)
	assert.Greater(t, snap.Score, singleTotal)
}

func TestEngine_ScoreScalesWithLevel(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	e.state.Level = 3
	fillRows(e.board, []int{19}, 9)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 7, Y: 16}

	snap, err := e.Tick(events(gametypes.InputHardDrop), 0)
	require.NoError(t, err)
	assert.Equal(t, 40*3, snap.Score)
}

func TestEngine_LevelUp(t *testing.T) {
	e, err := NewEngine(DefaultConfig(7))
	require.NoError(t, err)
	e.state.Lines = 9
	fillRows(e.board, []int{19}, 9)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 7, Y: 16}

	snap, err := e.Tick(events(gametypes.InputHardDrop), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Lines)
	assert.Equal(t, 2, snap.Level)

	// The level feeds back into the drop-interval lookup.
	assert.Less(t, e.cfg.DropInterval(2), e.cfg.DropInterval(1))
}

func TestEngine_PauseResume(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeT, Rotation: 0, X: 3, Y: 0}

	snap, err := e.Tick(events(gametypes.InputPause), 5000)
	require.NoError(t, err)
	assert.Equal(t, gametypes.StatusPaused, snap.Status)
	assert.Equal(t, 0, snap.Active.Y, "gravity must not advance while paused")

	// Movement while paused is ignored.
	snap, err = e.Tick(events(gametypes.InputMoveLeft), 5000)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Active.X)
	assert.Equal(t, int64(0), e.state.PlayedMS)

	snap, err = e.Tick(events(gametypes.InputResume), 0)
	require.NoError(t, err)
	assert.Equal(t, gametypes.StatusFalling, snap.Status)
	assert.Equal(t, 0, snap.Active.Y)
}

func TestEngine_StopMidFalling(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	fillRows(e.board, []int{19}, 9)
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 7, Y: 16}
	_, err = e.Tick(events(gametypes.InputHardDrop), 0)
	require.NoError(t, err)
	gridBefore := e.board.Cells()

	final := e.Stop()
	assert.Equal(t, gametypes.StatusTimeExpired, final.Status)
	assert.Equal(t, 1, final.Lines, "lines equal the clears completed in prior ticks")

	// No partial piece was written into the board.
	snap := e.Snapshot()
	assert.Nil(t, snap.Active)
	assert.Equal(t, gridBefore, snap.Grid)

	// Stop is idempotent; ticks after a terminal state are no-ops.
	assert.Equal(t, final, e.Stop())
	again, err := e.Tick(events(gametypes.InputHardDrop), 10000)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
	assert.Equal(t, final, e.State())
}

func TestEngine_SpawnCollisionGameOver(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	fillRows(e.board, []int{0, 1, 2})
	e.spawn()

	assert.Equal(t, gametypes.StatusGameOver, e.state.Status)
	assert.Nil(t, e.active)

	// The terminal state is visible at the spawn boundary, not only
	// after the next tick.
	snapNow := e.Snapshot()
	assert.Equal(t, gametypes.StatusGameOver, snapNow.Status)
	assert.Nil(t, snapNow.Active)

	// No further ticks mutate score or lines.
	before := e.State()
	snap, err := e.Tick(events(gametypes.InputSoftDrop), 5000)
	require.NoError(t, err)
	assert.Equal(t, gametypes.StatusGameOver, snap.Status)
	assert.Equal(t, before, e.State())
}

func TestEngine_TopOutOnLockAboveGrid(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	// Cells from row -1 downward: locking here is a top-out.
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeI, Rotation: 0, X: 0, Y: -1}

	e.lockAndContinue()
	assert.Equal(t, gametypes.StatusGameOver, e.state.Status)
	assert.Nil(t, e.active)
}

func TestEngine_QuitEndsRun(t *testing.T) {
	e, err := NewEngine(DefaultConfig(7))
	require.NoError(t, err)

	snap, err := e.Tick(events(gametypes.InputQuit), 0)
	require.NoError(t, err)
	assert.Equal(t, gametypes.StatusGameOver, snap.Status)
}

func TestEngine_Determinism(t *testing.T) {
	script := []gametypes.InputType{
		gametypes.InputMoveLeft,
		gametypes.InputRotateCW,
		gametypes.InputMoveRight,
		gametypes.InputSoftDrop,
		gametypes.InputHardDrop,
		gametypes.InputMoveLeft,
		gametypes.InputRotateCCW,
		gametypes.InputSoftDrop,
	}

	run := func() (*gametypes.GameState, *gametypes.Snapshot) {
		e, err := NewEngine(DefaultConfig(1234))
		require.NoError(t, err)
		var snap *gametypes.Snapshot
		for i := 0; i < 200; i++ {
			snap, err = e.Tick(events(script[i%len(script)]), 100)
			require.NoError(t, err)
		}
		return e.State(), snap
	}

	stateA, snapA := run()
	stateB, snapB := run()
	assert.Equal(t, stateA, stateB)
	assert.Equal(t, snapA, snapB)
}

func TestEngine_InvariantViolationAbortsRun(t *testing.T) {
	e, err := NewEngine(fixedConfig(7, 1000))
	require.NoError(t, err)
	// Force a corrupt state: the active piece overlaps locked cells.
	e.board.grid[19][1] = 1
	e.active = &gametypes.ActivePiece{Shape: pieces.ShapeO, Rotation: 0, X: 0, Y: 16}

	e.lockAndContinue()
	assert.Equal(t, gametypes.StatusGameOver, e.state.Status)

	_, err = e.Tick(nil, 0)
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))
}
