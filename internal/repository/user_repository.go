package repository

import (
	"context"

	"blog-api/internal/domain/entity"
)

type UserRepository interface {
	// Create inserts the user and sets its ID.
	// A taken name or email yields an error wrapping entity.ErrDuplicate.
	Create(ctx context.Context, user *entity.User) error
	// Get returns (nil, nil) if the user does not exist.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail returns (nil, nil) if no user has the email.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
