package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain/entity"
	"blog-api/internal/infra/db"
	"blog-api/internal/repository"
)

type UserRepo struct {
	db db.Querier
}

func NewUserRepo(q db.Querier) repository.UserRepository {
	return &UserRepo{db: q}
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (name, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if field, ok := duplicateField(err); ok {
		return fmt.Errorf("Create: %w", &entity.DuplicateError{Field: field})
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE id = $1`
	return repo.getOne(ctx, "Get", query, id)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = $1`
	return repo.getOne(ctx, "GetByEmail", query, email)
}

func (repo *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
