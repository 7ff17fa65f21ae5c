// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"blog-api/internal/repository"
)

// ArticleQueryBuilder renders an ArticleFilter as a WHERE clause with ?
// placeholders.
type ArticleQueryBuilder struct{}

func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause returns "" and no args for an empty filter.
func (*ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter, alias string) (string, []any) {
	if alias != "" {
		alias += "."
	}

	var (
		preds []string
		args  []any
	)
	if filter.Status != "" {
		preds, args = append(preds, alias+"status = ?"), append(args, string(filter.Status))
	}
	if filter.OwnerID != 0 {
		preds, args = append(preds, alias+"user_id = ?"), append(args, filter.OwnerID)
	}
	if len(preds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(preds, " AND "), args
}
