package state

import (
	"fmt"
	"sync"

	"github.com/recallab/tetromino/pkg/sessions"
)

type InMemoryResultManager struct {
	lock   sync.RWMutex
	result *sessions.Result
}

func NewInMemoryResultManager() *InMemoryResultManager {
	return &InMemoryResultManager{}
}

func (m *InMemoryResultManager) Get() (*sessions.Result, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.result == nil {
		return nil, nil
	}
	copy := *m.result
	return &copy, nil
}

func (m *InMemoryResultManager) Set(result *sessions.Result) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if result == nil {
		return fmt.Errorf("result is nil")
	}

	m.result = result
	return nil
}
