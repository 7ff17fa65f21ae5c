// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article lifecycle (draft/published), the User identity, and the
// validation rules and domain errors shared by the usecase layer.
package entity

import (
	"fmt"
	"time"

	"blog-api/internal/utils/text"
)

// Status is the publication state of an article.
type Status string

const (
	// StatusDraft articles are visible to their owner only and are validated for presence.
	StatusDraft Status = "draft"
	// StatusPublished articles are publicly visible and are validated for length.
	StatusPublished Status = "published"
)

// Length limits enforced while an article is published.
const (
	PublishedTitleMaxLength = 75
	PublishedBodyMaxLength  = 200
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a raw status value into a Status.
// An empty value yields StatusDraft.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusDraft, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Message: "is not included in the list"}
	}
	return s, nil
}

// Article represents a blog article owned by exactly one user.
type Article struct {
	ID          int64
	UserID      int64
	Title       string
	Body        string
	Status      Status
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublished reports whether the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// IsDraft reports whether the article is a draft.
func (a *Article) IsDraft() bool {
	return a.Status == StatusDraft
}

// OwnedBy reports whether userID owns the article.
func (a *Article) OwnedBy(userID int64) bool {
	return a.UserID == userID
}

// ArticleChange describes a partial update. Nil fields keep their current value.
type ArticleChange struct {
	Title  *string
	Body   *string
	Status *Status
}

// NewArticle builds a validated article for owner. An empty status defaults to draft.
// Creating an article directly as published stamps PublishedAt with now.
func NewArticle(owner int64, title, body string, status Status, now time.Time) (*Article, error) {
	if status == "" {
		status = StatusDraft
	}
	if err := ValidateContent(title, body, status); err != nil {
		return nil, err
	}

	a := &Article{
		UserID:    owner,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.transition(status, now)
	return a, nil
}

// Apply validates the resulting state of ch against the resulting status and,
// only when valid, mutates the article. The article is left untouched on error.
func (a *Article) Apply(ch ArticleChange, now time.Time) error {
	title, body, status := a.Title, a.Body, a.Status
	if ch.Title != nil {
		title = *ch.Title
	}
	if ch.Body != nil {
		body = *ch.Body
	}
	if ch.Status != nil {
		status = *ch.Status
	}

	if err := ValidateContent(title, body, status); err != nil {
		return err
	}

	a.Title = title
	a.Body = body
	a.transition(status, now)
	a.UpdatedAt = now
	return nil
}

// transition moves the article into status. Entering published from any other
// state sets PublishedAt; leaving published keeps it.
func (a *Article) transition(to Status, now time.Time) {
	if to == StatusPublished && a.Status != StatusPublished {
		t := now
		a.PublishedAt = &t
	}
	a.Status = to
}

// ValidateContent checks title and body against the rules of status and returns
// every violation at once as ValidationErrors, or nil.
func ValidateContent(title, body string, status Status) error {
	var errs ValidationErrors

	switch status {
	case StatusPublished:
		errs = appendLength(errs, "title", title, PublishedTitleMaxLength)
		errs = appendLength(errs, "body", body, PublishedBodyMaxLength)
	case StatusDraft:
		errs = appendPresence(errs, "title", title)
		errs = appendPresence(errs, "body", body)
	default:
		errs = append(errs, &ValidationError{Field: "status", Message: "is not included in the list"})
		errs = appendPresence(errs, "title", title)
		errs = appendPresence(errs, "body", body)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func appendPresence(errs ValidationErrors, field, value string) ValidationErrors {
	if value == "" {
		return append(errs, &ValidationError{Field: field, Message: "can't be blank"})
	}
	return errs
}

func appendLength(errs ValidationErrors, field, value string, max int) ValidationErrors {
	n := text.CountRunes(value)
	switch {
	case n < 1:
		return append(errs, &ValidationError{Field: field, Message: "is too short (minimum is 1 character)"})
	case n > max:
		return append(errs, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("is too long (maximum is %d characters)", max),
		})
	}
	return errs
}
