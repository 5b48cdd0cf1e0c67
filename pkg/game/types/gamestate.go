package types

import "github.com/recallab/tetromino/pkg/game/pieces"

// Status is the run-level state of the engine's state machine.
type Status int

const (
	StatusSpawning Status = iota
	StatusFalling
	StatusLocking
	StatusClearing
	StatusPaused
	StatusGameOver
	StatusTimeExpired
)

func (s Status) String() string {
	switch s {
	case StatusSpawning:
		return "Spawning"
	case StatusFalling:
		return "Falling"
	case StatusLocking:
		return "Locking"
	case StatusClearing:
		return "Clearing"
	case StatusPaused:
		return "Paused"
	case StatusGameOver:
		return "GameOver"
	case StatusTimeExpired:
		return "TimeExpired"
	}
	return "unknown"
}

// Terminal reports whether the status ends the run. No tick mutates the
// game state once a terminal status is reached.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusTimeExpired
}

// GameState is the run-level counters owned by the engine. Score, Level
// and Lines are monotonically non-decreasing for the lifetime of a run.
type GameState struct {
	Score    int    `json:"score"`
	Level    int    `json:"level"`
	Lines    int    `json:"lines"`
	Ticks    int64  `json:"ticks"`
	PlayedMS int64  `json:"played_ms"`
	Status   Status `json:"status"`
}

// Copy returns a value copy of the game state.
func (g *GameState) Copy() *GameState {
	c := *g
	return &c
}

// Snapshot is the renderable view of the simulation returned by every
// tick. The grid is indexed [row][column] with row 0 at the top.
type Snapshot struct {
	Grid   [][]Cell     `json:"grid"`
	Active *ActivePiece `json:"active,omitempty"`
	Next   pieces.Shape `json:"next"`
	Score  int          `json:"score"`
	Level  int          `json:"level"`
	Lines  int          `json:"lines"`
	Status Status       `json:"status"`
}
