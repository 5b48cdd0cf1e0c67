package workers

import (
	"context"
	"time"

	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/repositories"
	"github.com/recallab/tetromino/pkg/sessions"
	"github.com/recallab/tetromino/pkg/state"
)

type SaveSessionWorker struct {
	repository      repositories.Repository
	saveSessionChan <-chan SaveSessionRequest
	resultManager   state.ResultManager
	interval        time.Duration
}

type NewSaveSessionWorkerOptions struct {
	Repository      repositories.Repository
	SaveSessionChan <-chan SaveSessionRequest
	ResultManager   state.ResultManager
	Interval        time.Duration
}

type SaveSessionRequest struct {
	Timestamp int64
	Result    *sessions.Result
}

// NewSaveSessionWorker creates a new SaveSessionWorker.
// The worker processes save requests from the session loop and
// periodically checkpoints the current result to the repository.
func NewSaveSessionWorker(opts NewSaveSessionWorkerOptions) *SaveSessionWorker {
	return &SaveSessionWorker{
		repository:      opts.Repository,
		saveSessionChan: opts.SaveSessionChan,
		resultManager:   opts.ResultManager,
		interval:        opts.Interval,
	}
}

func (w *SaveSessionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveSessionChan:
			w.saveResult(ctx, saveRequest.Result, saveRequest.Timestamp)
		case t := <-ticker.C:
			result, err := w.resultManager.Get()
			if err != nil {
				log.Error("Failed to get current session result: %v", err)
				continue
			}
			if result == nil {
				continue
			}
			w.saveResult(ctx, result, t.UnixMilli())
		}
	}
}

func (w *SaveSessionWorker) saveResult(ctx context.Context, result *sessions.Result, timestamp int64) {
	session := result.Model()
	if session.CreatedAt == 0 {
		session.CreatedAt = timestamp
	}
	if err := w.repository.SaveSession(ctx, session); err != nil {
		log.Error("Failed to save session: %v", err)
	}
}
