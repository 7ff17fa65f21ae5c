// Package persistence selects the repository implementations for a database dialect.
package persistence

import (
	"fmt"

	"blog-api/internal/infra/adapter/persistence/postgres"
	"blog-api/internal/infra/adapter/persistence/sqlite"
	"blog-api/internal/infra/db"
	"blog-api/internal/repository"
)

// Repositories groups the repositories backed by one connection.
type Repositories struct {
	Articles repository.ArticleRepository
	Users    repository.UserRepository
	Sessions repository.SessionRepository
}

// New returns the repositories for dialect, all sharing q.
func New(dialect db.Dialect, q db.Querier) (*Repositories, error) {
	switch dialect {
	case db.Postgres:
		return &Repositories{
			Articles: postgres.NewArticleRepo(q),
			Users:    postgres.NewUserRepo(q),
			Sessions: postgres.NewSessionRepo(q),
		}, nil
	case db.SQLite:
		return &Repositories{
			Articles: sqlite.NewArticleRepo(q),
			Users:    sqlite.NewUserRepo(q),
			Sessions: sqlite.NewSessionRepo(q),
		}, nil
	default:
		return nil, fmt.Errorf("no repositories for dialect %q", dialect)
	}
}
