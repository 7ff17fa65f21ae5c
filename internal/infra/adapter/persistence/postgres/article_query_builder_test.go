package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-api/internal/domain/entity"
	"blog-api/internal/infra/adapter/persistence/postgres"
	"blog-api/internal/repository"
)

func TestArticleQueryBuilder_BuildWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter repository.ArticleFilter
		alias  string
		clause string
		args   []any
	}{
		{name: "empty filter"},
		{name: "empty filter with alias", alias: "a"},
		{
			name:   "published feed",
			filter: repository.ArticleFilter{Status: entity.StatusPublished},
			clause: "WHERE status = $1",
			args:   []any{"published"},
		},
		{
			name:   "everything one author owns",
			filter: repository.ArticleFilter{OwnerID: 7},
			alias:  "a",
			clause: "WHERE a.user_id = $1",
			args:   []any{int64(7)},
		},
		{
			name:   "one author's drafts",
			filter: repository.ArticleFilter{Status: entity.StatusDraft, OwnerID: 3},
			alias:  "a",
			clause: "WHERE a.status = $1 AND a.user_id = $2",
			args:   []any{"draft", int64(3)},
		},
	}

	qb := postgres.NewArticleQueryBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := qb.BuildWhereClause(tt.filter, tt.alias)
			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}
