// Package article provides HTTP handlers for article endpoints: the public
// listing and detail, the caller's drafts and published articles, and the
// create, update and delete operations.
package article

import (
	"time"

	"blog-api/internal/repository"
)

// UserDTO is the owner embedded in article responses.
type UserDTO struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"test_user"`
	Email string `json:"email" example:"test@example.com"`
}

// PreviewDTO is the list item representation.
type PreviewDTO struct {
	ID            int64      `json:"id" example:"1"`
	Title         string     `json:"title" example:"Go 1.25 リリース"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2025-09-20T09:40:00Z"`
	Status        string     `json:"status" example:"published"`
	PublishedAt   *time.Time `json:"published_at" example:"2025-09-20T09:40:00Z"`
	CommentsCount int64      `json:"comments_count" example:"0"`
	LikesCount    int64      `json:"likes_count" example:"0"`
	User          UserDTO    `json:"user"`
}

// DetailDTO is the single article representation.
type DetailDTO struct {
	ID          int64      `json:"id" example:"1"`
	Title       string     `json:"title" example:"Go 1.25 リリース"`
	Body        string     `json:"body" example:"本文"`
	UpdatedAt   time.Time  `json:"updated_at" example:"2025-09-20T09:40:00Z"`
	Status      string     `json:"status" example:"published"`
	PublishedAt *time.Time `json:"published_at" example:"2025-09-20T09:40:00Z"`
	User        UserDTO    `json:"user"`
}

func toUserDTO(u repository.UserSummary) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toPreview(a repository.ArticleWithOwner) PreviewDTO {
	return PreviewDTO{
		ID:            a.Article.ID,
		Title:         a.Article.Title,
		UpdatedAt:     a.Article.UpdatedAt,
		Status:        a.Article.Status.String(),
		PublishedAt:   a.Article.PublishedAt,
		CommentsCount: a.CommentsCount,
		LikesCount:    a.LikesCount,
		User:          toUserDTO(a.Owner),
	}
}

func toPreviews(items []repository.ArticleWithOwner) []PreviewDTO {
	out := make([]PreviewDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toPreview(it))
	}
	return out
}

func toDetail(a *repository.ArticleWithOwner) DetailDTO {
	return DetailDTO{
		ID:          a.Article.ID,
		Title:       a.Article.Title,
		Body:        a.Article.Body,
		UpdatedAt:   a.Article.UpdatedAt,
		Status:      a.Article.Status.String(),
		PublishedAt: a.Article.PublishedAt,
		User:        toUserDTO(a.Owner),
	}
}

// Params is the write body. Every field is optional on update.
type Params struct {
	Title  *string `json:"title" example:"タイトル"`
	Body   *string `json:"body" example:"本文"`
	Status *string `json:"status" example:"draft" enums:"draft,published"`
}

// envelope accepts both {"article": {...}} and the bare object.
type envelope struct {
	Article *Params `json:"article"`
	Params
}

func (e envelope) params() Params {
	if e.Article != nil {
		return *e.Article
	}
	return e.Params
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
