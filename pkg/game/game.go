package game

import (
	"github.com/recallab/tetromino/pkg/game/constants"
	"github.com/recallab/tetromino/pkg/game/pieces"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/recallab/tetromino/pkg/log"
)

// Engine is the distractor-task simulation. The host calls Tick once per
// frame with the ordered input events and the elapsed time for that frame;
// the engine advances the state machine and returns a renderable snapshot.
//
// All simulation is deterministic given the seed, the input-event sequence
// and the elapsed-time values. The engine never blocks and is not safe for
// concurrent ticking.
type Engine struct {
	cfg     gametypes.Config
	board   *Board
	spawner *Spawner
	timer   dropTimer

	state  *gametypes.GameState
	active *gametypes.ActivePiece
	next   pieces.Shape

	// resumeTo is the status to restore on Resume.
	resumeTo gametypes.Status
	// failure holds the diagnostic error after an invariant violation.
	failure error
	// last is the snapshot returned by ticks after a terminal state.
	last *gametypes.Snapshot
}

// NewEngine validates the configuration and creates an engine with the
// first piece already spawned. A zero LinesPerLevel falls back to the
// default threshold.
func NewEngine(cfg gametypes.Config) (*Engine, error) {
	if cfg.BoardWidth <= 0 || cfg.BoardHeight <= 0 {
		return nil, &ConfigurationError{Reason: "board dimensions must be positive"}
	}
	if len(cfg.SpeedCurve) == 0 {
		return nil, &ConfigurationError{Reason: "speed curve must not be empty"}
	}
	for _, interval := range cfg.SpeedCurve {
		if interval <= 0 {
			return nil, &ConfigurationError{Reason: "speed curve intervals must be positive"}
		}
	}
	for rows := 1; rows <= constants.MaxSimultaneousClears; rows++ {
		if _, ok := cfg.ScoringTable[rows]; !ok {
			return nil, &ConfigurationError{Reason: "scoring table must cover 1-4 simultaneous clears"}
		}
	}
	if cfg.LinesPerLevel < 0 {
		return nil, &ConfigurationError{Reason: "lines per level must not be negative"}
	}
	if cfg.LinesPerLevel == 0 {
		cfg.LinesPerLevel = constants.LinesPerLevel
	}

	e := &Engine{
		cfg:     cfg,
		board:   NewBoard(cfg.BoardWidth, cfg.BoardHeight),
		spawner: NewSpawner(cfg.Seed),
		state: &gametypes.GameState{
			Level:  1,
			Status: gametypes.StatusSpawning,
		},
	}
	e.next = e.spawner.Next()
	e.spawn()
	e.last = e.snapshot()
	return e, nil
}

// Tick runs one simulation step: events in arrival order, then gravity.
// After a terminal state it is a no-op returning the last snapshot. The
// returned error is non-nil only for an invariant violation, which aborts
// the run with the diagnostic surfaced.
func (e *Engine) Tick(events []gametypes.InputEvent, elapsedMS int64) (*gametypes.Snapshot, error) {
	if e.state.Status.Terminal() {
		return e.last, e.failure
	}

	e.state.Ticks++
	for _, event := range events {
		e.handleEvent(event)
		if e.state.Status.Terminal() {
			break
		}
	}

	if !e.state.Status.Terminal() && e.state.Status != gametypes.StatusPaused {
		e.state.PlayedMS += elapsedMS
		drops := e.timer.advance(elapsedMS, e.cfg.DropInterval(e.state.Level))
		for i := 0; i < drops && e.state.Status == gametypes.StatusFalling; i++ {
			if e.descend() {
				// Leftover drops belong to the locked piece, not the
				// fresh spawn.
				break
			}
		}
	}

	e.last = e.snapshot()
	return e.last, e.failure
}

// Stop finalizes the run from any non-terminal state, discarding the
// in-progress piece without writing it into the board. It is idempotent
// and returns the final game state.
func (e *Engine) Stop() *gametypes.GameState {
	if !e.state.Status.Terminal() {
		e.state.Status = gametypes.StatusTimeExpired
		e.active = nil
		e.last = e.snapshot()
	}
	return e.state.Copy()
}

// Snapshot returns the most recent snapshot without ticking.
func (e *Engine) Snapshot() *gametypes.Snapshot {
	return e.last
}

// State returns a copy of the current game state.
func (e *Engine) State() *gametypes.GameState {
	return e.state.Copy()
}

func (e *Engine) handleEvent(event gametypes.InputEvent) {
	switch event.Type {
	case gametypes.InputPause:
		if e.state.Status != gametypes.StatusPaused {
			e.resumeTo = e.state.Status
			e.state.Status = gametypes.StatusPaused
		}
		return
	case gametypes.InputResume:
		if e.state.Status == gametypes.StatusPaused {
			e.state.Status = e.resumeTo
		}
		return
	case gametypes.InputQuit:
		e.active = nil
		e.state.Status = gametypes.StatusGameOver
		return
	}

	if e.state.Status == gametypes.StatusPaused || e.active == nil {
		return
	}

	switch event.Type {
	case gametypes.InputMoveLeft:
		*e.active, _ = tryTranslate(e.board, *e.active, -1, 0)
	case gametypes.InputMoveRight:
		*e.active, _ = tryTranslate(e.board, *e.active, 1, 0)
	case gametypes.InputRotateCW:
		*e.active, _ = tryRotate(e.board, *e.active, 1)
	case gametypes.InputRotateCCW:
		*e.active, _ = tryRotate(e.board, *e.active, -1)
	case gametypes.InputSoftDrop:
		e.descend()
	case gametypes.InputHardDrop:
		for {
			candidate, ok := tryTranslate(e.board, *e.active, 0, 1)
			if !ok {
				break
			}
			*e.active = candidate
		}
		e.lockAndContinue()
	default:
		log.Warn("Ignoring unrecognized input event %d at tick %d", event.Type, event.Tick)
	}
}

// descend attempts a one-row downward translate. A rejected descent locks
// the piece instead of retrying. Reports whether the piece locked.
func (e *Engine) descend() bool {
	candidate, ok := tryTranslate(e.board, *e.active, 0, 1)
	if !ok {
		e.lockAndContinue()
		return true
	}
	*e.active = candidate
	return false
}

// lockAndContinue runs the Locking -> Clearing -> Spawning pipeline within
// the current tick.
func (e *Engine) lockAndContinue() {
	e.state.Status = gametypes.StatusLocking

	for _, c := range e.active.Cells() {
		if c.DY < 0 {
			// Locked partly above the grid: top-out.
			e.active = nil
			e.state.Status = gametypes.StatusGameOver
			return
		}
	}

	if err := e.board.Lock(*e.active); err != nil {
		log.Error("Aborting run: %v", err)
		e.failure = err
		e.active = nil
		e.state.Status = gametypes.StatusGameOver
		return
	}
	e.active = nil

	e.state.Status = gametypes.StatusClearing
	if cleared := e.board.ClearFullRows(); cleared > 0 {
		e.state.Score += e.cfg.ScoringTable[cleared] * e.state.Level
		e.state.Lines += cleared
		if level := e.state.Lines/e.cfg.LinesPerLevel + 1; level > e.state.Level {
			e.state.Level = level
		}
	}

	e.state.Status = gametypes.StatusSpawning
	e.spawn()
}

// spawn places the next piece at the spawn position with rotation 0. If
// any of its cells are already occupied the run ends in a top-out.
func (e *Engine) spawn() {
	piece := gametypes.ActivePiece{
		Shape:    e.next,
		Rotation: 0,
		X:        constants.SpawnColumn(e.cfg.BoardWidth),
		Y:        constants.SpawnRow,
	}
	e.next = e.spawner.Next()
	e.timer.reset()

	if !canPlace(e.board, piece) {
		e.active = nil
		e.state.Status = gametypes.StatusGameOver
		e.last = e.snapshot()
		return
	}
	e.active = &piece
	e.state.Status = gametypes.StatusFalling
}

func (e *Engine) snapshot() *gametypes.Snapshot {
	s := &gametypes.Snapshot{
		Grid:   e.board.Cells(),
		Next:   e.next,
		Score:  e.state.Score,
		Level:  e.state.Level,
		Lines:  e.state.Lines,
		Status: e.state.Status,
	}
	if e.active != nil {
		active := *e.active
		s.Active = &active
	}
	return s
}
