package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain/entity"
	"blog-api/internal/infra/db"
	"blog-api/internal/repository"
)

// UserRepo implements the UserRepository interface using SQLite.
type UserRepo struct{ db db.Querier }

// NewUserRepo creates a new SQLite-backed user repository.
func NewUserRepo(q db.Querier) repository.UserRepository {
	return &UserRepo{db: q}
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (name, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if field, ok := duplicateField(err); ok {
		return fmt.Errorf("Create: %w", &entity.DuplicateError{Field: field})
	}
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	user.ID = id
	return nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE id = ?
`
	return repo.getOne(ctx, "Get", query, id)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = ?
`
	return repo.getOne(ctx, "GetByEmail", query, email)
}

func (repo *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: QueryRowContext: %w", op, err)
	}
	return &u, nil
}
