// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"strconv"
	"strings"

	"blog-api/internal/repository"
)

// ArticleQueryBuilder renders an ArticleFilter as a WHERE clause with
// numbered placeholders.
type ArticleQueryBuilder struct{}

func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause returns "" and no args for an empty filter. Columns are
// qualified with alias when it is set.
func (*ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter, alias string) (string, []any) {
	if alias != "" {
		alias += "."
	}

	var (
		sb   strings.Builder
		args []any
	)
	add := func(column string, v any) {
		if len(args) == 0 {
			sb.WriteString("WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, v)
		sb.WriteString(alias + column + " = $" + strconv.Itoa(len(args)))
	}

	if filter.Status != "" {
		add("status", string(filter.Status))
	}
	if filter.OwnerID != 0 {
		add("user_id", filter.OwnerID)
	}
	return sb.String(), args
}
