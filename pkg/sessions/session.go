// Package sessions runs timed distractor sessions on top of the game
// engine. A session owns consecutive engine runs for one distractor phase:
// it is bounded by a wall-clock duration, and a top-out does not end it
// but counts as a loss and restarts on a reset board.
package sessions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/recallab/tetromino/pkg/game"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/repositories/models"
)

// Result is the final outcome of a session.
type Result struct {
	ID         string
	Seed       int64
	StartedAt  time.Time
	DurationMS int64
	Lines      int
	Losses     int
	Score      int
	MaxLevel   int
}

// Model converts the result to its storage representation.
func (r *Result) Model() *models.Session {
	var createdAt int64
	if !r.StartedAt.IsZero() {
		createdAt = r.StartedAt.UnixMilli()
	}
	return &models.Session{
		ID:         r.ID,
		CreatedAt:  createdAt,
		Seed:       r.Seed,
		DurationMS: r.DurationMS,
		Lines:      r.Lines,
		Losses:     r.Losses,
		Score:      r.Score,
		MaxLevel:   r.MaxLevel,
	}
}

// NewSessionOptions contains options for creating a new Session.
type NewSessionOptions struct {
	// Seed seeds the first engine run; later runs in the same session
	// derive their seeds from it.
	Seed int64
	// Duration is the wall-clock length of the distractor phase.
	Duration time.Duration
	// Config overrides the engine configuration. The zero value uses the
	// default configuration; Seed always takes precedence over Config.Seed.
	Config gametypes.Config
}

// Session drives engine runs for one distractor phase. It is advanced by
// the host once per frame and is not safe for concurrent use.
type Session struct {
	id         string
	seed       int64
	durationMS int64
	cfg        gametypes.Config
	startedAt  time.Time

	engine    *game.Engine
	elapsedMS int64
	runs      int

	lines    int
	losses   int
	score    int
	maxLevel int

	done   bool
	result *Result
}

// NewSession creates a session with the first engine run already started.
func NewSession(opts NewSessionOptions) (*Session, error) {
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}
	cfg := opts.Config
	if cfg.BoardWidth == 0 && cfg.BoardHeight == 0 {
		cfg = game.DefaultConfig(opts.Seed)
	}
	cfg.Seed = opts.Seed

	engine, err := game.NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %v", err)
	}

	return &Session{
		id:         uuid.New().String(),
		seed:       opts.Seed,
		durationMS: opts.Duration.Milliseconds(),
		cfg:        cfg,
		startedAt:  time.Now(),
		engine:     engine,
	}, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Done reports whether the session's duration has elapsed.
func (s *Session) Done() bool {
	return s.done
}

// Result returns the final result, or nil while the session is running.
func (s *Session) Result() *Result {
	return s.result
}

// Advance feeds one frame's input events and elapsed time to the current
// engine run. When the accumulated elapsed time reaches the session
// duration, the in-progress run is stopped and the result finalized. A
// top-out counts as a loss and starts a fresh run on a reset board.
func (s *Session) Advance(events []gametypes.InputEvent, elapsedMS int64) (*gametypes.Snapshot, error) {
	if s.done {
		return s.engine.Snapshot(), nil
	}

	s.elapsedMS += elapsedMS
	if s.elapsedMS >= s.durationMS {
		s.finish()
		return s.engine.Snapshot(), nil
	}

	for _, event := range events {
		if event.Type == gametypes.InputQuit {
			log.Info("Session %s quit by host input", s.id)
			s.finish()
			return s.engine.Snapshot(), nil
		}
	}

	snap, err := s.engine.Tick(events, elapsedMS)
	if err != nil {
		// An invariant violation is a defect: end the session and surface
		// the diagnostic rather than restarting on a corrupt board.
		log.Error("Session %s aborted: %v", s.id, err)
		s.finish()
		return snap, err
	}

	if snap.Status == gametypes.StatusGameOver {
		s.losses++
		s.accumulate(s.engine.State())
		s.runs++

		cfg := s.cfg
		cfg.Seed = s.seed + int64(s.runs)
		engine, err := game.NewEngine(cfg)
		if err != nil {
			return snap, fmt.Errorf("failed to restart engine: %v", err)
		}
		s.engine = engine
		snap = s.engine.Snapshot()
	}

	return snap, nil
}

// Progress returns a point-in-time result with the totals so far,
// including the in-progress run. Once the session is done it is the
// same as Result.
func (s *Session) Progress() *Result {
	if s.done {
		return s.result
	}
	progress := &Result{
		ID:         s.id,
		Seed:       s.seed,
		StartedAt:  s.startedAt,
		DurationMS: s.durationMS,
		Lines:      s.lines,
		Losses:     s.losses,
		Score:      s.score,
		MaxLevel:   s.maxLevel,
	}
	state := s.engine.State()
	progress.Lines += state.Lines
	progress.Score += state.Score
	if state.Level > progress.MaxLevel {
		progress.MaxLevel = state.Level
	}
	return progress
}

// Stop ends the session early, finalizing the result. Idempotent.
func (s *Session) Stop() *Result {
	if !s.done {
		s.finish()
	}
	return s.result
}

func (s *Session) finish() {
	final := s.engine.Stop()
	s.accumulate(final)
	s.done = true
	s.result = &Result{
		ID:         s.id,
		Seed:       s.seed,
		StartedAt:  s.startedAt,
		DurationMS: s.durationMS,
		Lines:      s.lines,
		Losses:     s.losses,
		Score:      s.score,
		MaxLevel:   s.maxLevel,
	}
}

func (s *Session) accumulate(state *gametypes.GameState) {
	s.lines += state.Lines
	s.score += state.Score
	if state.Level > s.maxLevel {
		s.maxLevel = state.Level
	}
}
