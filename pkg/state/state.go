package state

import (
	"github.com/recallab/tetromino/pkg/sessions"
)

// ResultManager provides shared access to the current session result.
// Implementations must be thread-safe.
type ResultManager interface {
	// Get returns a copy of the current result, or nil if no session
	// has made progress yet.
	Get() (*sessions.Result, error)
	// Set stores the current result.
	Set(result *sessions.Result) error
}
