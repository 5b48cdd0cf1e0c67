package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/recallab/tetromino/pkg/repositories"
)

// newRepository opens the repository for a connection string, falling
// back to RECALLAB_DATABASE_URL and then a local sqlite database.
func newRepository(ctx context.Context, connStr string) (repositories.Repository, error) {
	if connStr == "" {
		connStr = os.Getenv("RECALLAB_DATABASE_URL")
	}
	if connStr == "" {
		connStr = "sqlite://recallab.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		return repositories.NewSQLiteRepository(ctx, u.Host, "./migrations/sqlite")
	case "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String())
	}
	return nil, fmt.Errorf("unknown database type %s", u.Scheme)
}
