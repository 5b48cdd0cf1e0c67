package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/recallab/tetromino/pkg/repositories/models"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database. The schema is expected
// to already exist (see migrations/postgres). The caller is responsible
// for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSession(ctx context.Context, session *models.Session) error {
	q := `
	INSERT INTO sessions (id, created_at, seed, duration_ms, lines, losses, score, max_level)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		created_at = $2, seed = $3, duration_ms = $4, lines = $5, losses = $6, score = $7, max_level = $8;
	`
	_, err := r.conn.Exec(ctx, q, session.ID, session.CreatedAt, session.Seed,
		session.DurationMS, session.Lines, session.Losses, session.Score, session.MaxLevel)
	if err != nil {
		return fmt.Errorf("failed to insert session: %v", err)
	}

	return nil
}

func (r *PostgresRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	q := `
	SELECT id, created_at, seed, duration_ms, lines, losses, score, max_level
	FROM sessions WHERE id = $1;
	`
	session := &models.Session{}
	if err := r.conn.QueryRow(ctx, q, id).Scan(&session.ID, &session.CreatedAt,
		&session.Seed, &session.DurationMS, &session.Lines, &session.Losses,
		&session.Score, &session.MaxLevel); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan session: %v", err)
	}

	return session, nil
}

func (r *PostgresRepository) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := r.conn.Query(ctx, `
	SELECT id, created_at, seed, duration_ms, lines, losses, score, max_level
	FROM sessions ORDER BY created_at;
	`)
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
