package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/recallab/tetromino/pkg/repositories/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := os.ReadDir(migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSession(ctx context.Context, session *models.Session) error {
	q := `
	INSERT OR REPLACE INTO sessions (id, created_at, seed, duration_ms, lines, losses, score, max_level)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, session.ID, session.CreatedAt, session.Seed,
		session.DurationMS, session.Lines, session.Losses, session.Score, session.MaxLevel)
	if err != nil {
		return fmt.Errorf("failed to insert session: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	q := `
	SELECT id, created_at, seed, duration_ms, lines, losses, score, max_level
	FROM sessions WHERE id = ?;
	`
	session := &models.Session{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&session.ID, &session.CreatedAt,
		&session.Seed, &session.DurationMS, &session.Lines, &session.Losses,
		&session.Score, &session.MaxLevel); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan session: %v", err)
	}

	return session, nil
}

func (r *SQLiteRepository) ListSessions(ctx context.Context) ([]*models.Session, error) {
	q := `
	SELECT id, created_at, seed, duration_ms, lines, losses, score, max_level
	FROM sessions ORDER BY created_at;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %v", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.CreatedAt, &session.Seed,
			&session.DurationMS, &session.Lines, &session.Losses,
			&session.Score, &session.MaxLevel); err != nil {
			return nil, fmt.Errorf("failed to scan session: %v", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
