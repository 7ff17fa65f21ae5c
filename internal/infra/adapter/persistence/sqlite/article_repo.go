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

const selectArticleWithOwner = `
SELECT a.id, a.user_id, a.title, a.body, a.status, a.published_at, a.created_at, a.updated_at,
       u.name, u.email,
       (SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id)      AS comments_count,
       (SELECT COUNT(*) FROM article_likes l WHERE l.article_id = a.id) AS likes_count
FROM articles a
INNER JOIN users u ON a.user_id = u.id`

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct {
	db           db.Querier
	queryBuilder *ArticleQueryBuilder
}

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(q db.Querier) repository.ArticleRepository {
	return &ArticleRepo{db: q, queryBuilder: NewArticleQueryBuilder()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a           entity.Article
		status      string
		publishedAt sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &status,
		&publishedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = entity.Status(status)
	a.PublishedAt = timePtr(publishedAt)
	return &a, nil
}

func scanArticleWithOwner(row rowScanner) (repository.ArticleWithOwner, error) {
	var (
		a           entity.Article
		status      string
		publishedAt sql.NullTime
		out         repository.ArticleWithOwner
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &status,
		&publishedAt, &a.CreatedAt, &a.UpdatedAt,
		&out.Owner.Name, &out.Owner.Email,
		&out.CommentsCount, &out.LikesCount); err != nil {
		return out, err
	}
	a.Status = entity.Status(status)
	a.PublishedAt = timePtr(publishedAt)
	out.Article = &a
	out.Owner.ID = a.UserID
	return out, nil
}

// List retrieves the articles matching filter, most recently updated first.
func (repo *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]repository.ArticleWithOwner, error) {
	where, args := repo.queryBuilder.BuildWhereClause(filter, "a")
	query := selectArticleWithOwner + "\n" + where + "\nORDER BY a.updated_at DESC, a.id DESC"

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithOwner, 0, 32)
	for rows.Next() {
		item, err := scanArticleWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return result, nil
}

// Get retrieves an article by ID. Returns (nil, nil) if missing.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, user_id, title, body, status, published_at, created_at, updated_at
FROM articles
WHERE id = ?
LIMIT 1
`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return article, nil
}

// GetWithOwner retrieves an article with its owner and counts. Returns (nil, nil) if missing.
func (repo *ArticleRepo) GetWithOwner(ctx context.Context, id int64) (*repository.ArticleWithOwner, error) {
	const query = selectArticleWithOwner + `
WHERE a.id = ?
LIMIT 1
`
	item, err := scanArticleWithOwner(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetWithOwner: QueryRowContext: %w", err)
	}
	return &item, nil
}

// Create inserts a new article and sets its ID.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (user_id, title, body, status, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query,
		article.UserID, article.Title, article.Body, string(article.Status),
		nullTime(article.PublishedAt), article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	article.ID = id
	return nil
}

// Update writes the article guarded by id and owner.
func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title        = ?,
       body         = ?,
       status       = ?,
       published_at = ?,
       updated_at   = ?
WHERE id = ? AND user_id = ?
`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Body, string(article.Status),
		nullTime(article.PublishedAt), article.UpdatedAt,
		article.ID, article.UserID,
	)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

// Delete removes the article with its likes and comments in one transaction.
func (repo *ArticleRepo) Delete(ctx context.Context, id, ownerID int64) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Delete: BeginTx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM article_likes WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("Delete: likes: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("Delete: comments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = fmt.Errorf("Delete: %w", entity.ErrNotFound)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Delete: Commit: %w", err)
	}
	return nil
}

// CountByStatus returns the number of articles per status.
func (repo *ArticleRepo) CountByStatus(ctx context.Context) (map[entity.Status]int64, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := map[entity.Status]int64{
		entity.StatusDraft:     0,
		entity.StatusPublished: 0,
	}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("CountByStatus: Scan: %w", err)
		}
		counts[entity.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountByStatus: rows.Err: %w", err)
	}
	return counts, nil
}
