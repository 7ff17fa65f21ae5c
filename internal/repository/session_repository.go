package repository

import (
	"context"
	"time"

	"blog-api/internal/domain/entity"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// Get returns (nil, nil) if the session does not exist.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Delete revokes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired purges sessions that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
