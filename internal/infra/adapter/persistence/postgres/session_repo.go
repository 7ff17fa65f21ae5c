package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/domain/entity"
	"blog-api/internal/infra/db"
	"blog-api/internal/repository"
)

type SessionRepo struct {
	db db.Querier
}

func NewSessionRepo(q db.Querier) repository.SessionRepository {
	return &SessionRepo{db: q}
}

func (repo *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	const query = `
INSERT INTO sessions (id, user_id, expires_at, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := repo.db.ExecContext(ctx, query, s.ID, s.UserID, s.ExpiresAt, s.CreatedAt); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SessionRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	const query = `
SELECT id, user_id, expires_at, created_at
FROM sessions
WHERE id = $1`
	var s entity.Session
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &s, nil
}

func (repo *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteExpired: RowsAffected: %w", err)
	}
	return n, nil
}
