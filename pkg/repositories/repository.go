package repositories

import (
	"context"

	"github.com/recallab/tetromino/pkg/repositories/models"
)

// Repository stores finished distractor sessions.
type Repository interface {
	Close(ctx context.Context) error
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]*models.Session, error)
}
