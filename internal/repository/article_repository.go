package repository

import (
	"context"

	"blog-api/internal/domain/entity"
)

// ArticleFilter narrows List. Zero values mean "any".
type ArticleFilter struct {
	Status  entity.Status
	OwnerID int64
}

// UserSummary is the public part of an article owner.
type UserSummary struct {
	ID    int64
	Name  string
	Email string
}

// ArticleWithOwner is an article joined with its owner and association counts.
type ArticleWithOwner struct {
	Article       *entity.Article
	Owner         UserSummary
	CommentsCount int64
	LikesCount    int64
}

type ArticleRepository interface {
	// List returns the articles matching filter ordered by updated_at DESC.
	List(ctx context.Context, filter ArticleFilter) ([]ArticleWithOwner, error)
	// Get returns (nil, nil) if the article does not exist.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// GetWithOwner returns (nil, nil) if the article does not exist.
	GetWithOwner(ctx context.Context, id int64) (*ArticleWithOwner, error)
	// Create inserts the article and sets its ID.
	Create(ctx context.Context, article *entity.Article) error
	// Update writes the article guarded by id and owner.
	// It returns entity.ErrNotFound when no row matched.
	Update(ctx context.Context, article *entity.Article) error
	// Delete removes the article with its likes and comments in one transaction.
	// It returns entity.ErrNotFound when no row matched id and owner.
	Delete(ctx context.Context, id, ownerID int64) error
	// CountByStatus returns the number of articles per status.
	CountByStatus(ctx context.Context) (map[entity.Status]int64, error)
}
