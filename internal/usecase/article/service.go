package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blog-api/internal/domain/entity"
	"blog-api/internal/domain/policy"
	"blog-api/internal/observability/logging"
	"blog-api/internal/observability/metrics"
	"blog-api/internal/observability/tracing"
	"blog-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
// An empty Status creates a draft.
type CreateInput struct {
	Title  string
	Body   string
	Status string
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID     int64
	Title  *string
	Body   *string
	Status *string
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
	// Now returns the current time; defaults to time.Now in UTC.
	Now func() time.Time
	// Logger defaults to the logger carried by the context.
	Logger *slog.Logger
}

/* ───────── Reads ───────── */

// ListPublished returns every published article, most recently updated first.
// The actor may be nil.
func (s *Service) ListPublished(ctx context.Context, actor *policy.Actor) ([]repository.ArticleWithOwner, error) {
	return s.list(ctx, "list_published", policy.OpViewPublic, actor)
}

// ListOwnDrafts returns the caller's drafts, most recently updated first.
func (s *Service) ListOwnDrafts(ctx context.Context, actor *policy.Actor) ([]repository.ArticleWithOwner, error) {
	return s.list(ctx, "list_own_drafts", policy.OpViewOwnDraft, actor)
}

// ListOwnPublished returns the caller's published articles, most recently updated first.
func (s *Service) ListOwnPublished(ctx context.Context, actor *policy.Actor) ([]repository.ArticleWithOwner, error) {
	return s.list(ctx, "list_own_published", policy.OpListOwnPublished, actor)
}

// GetPublished returns a published article by id.
// Returns ErrArticleNotFound for drafts, missing ids and non-positive ids.
func (s *Service) GetPublished(ctx context.Context, actor *policy.Actor, id int64) (*repository.ArticleWithOwner, error) {
	return s.get(ctx, "get_published", policy.OpViewPublic, actor, id)
}

// GetOwnDraft returns one of the caller's drafts by id.
// Another user's draft and published articles are reported as ErrArticleNotFound.
func (s *Service) GetOwnDraft(ctx context.Context, actor *policy.Actor, id int64) (*repository.ArticleWithOwner, error) {
	return s.get(ctx, "get_own_draft", policy.OpViewOwnDraft, actor, id)
}

func (s *Service) list(ctx context.Context, name string, op policy.Operation, actor *policy.Actor) (out []repository.ArticleWithOwner, err error) {
	ctx, span := s.start(ctx, name, actor, 0)
	defer func() { s.finish(ctx, span, name, actor, 0, err) }()

	scope, d := policy.ScopeFor(op, actor)
	if d != policy.Allow {
		return nil, decisionError(d)
	}

	out, err = s.Repo.List(ctx, repository.ArticleFilter{Status: scope.Status, OwnerID: scope.OwnerID})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	span.SetAttributes(attribute.Int("article.count", len(out)))
	return out, nil
}

func (s *Service) get(ctx context.Context, name string, op policy.Operation, actor *policy.Actor, id int64) (out *repository.ArticleWithOwner, err error) {
	ctx, span := s.start(ctx, name, actor, id)
	defer func() { s.finish(ctx, span, name, actor, id, err) }()

	if op.RequiresIdentity() && actor == nil {
		return nil, ErrUnauthenticated
	}
	if id <= 0 {
		return nil, ErrArticleNotFound
	}

	found, err := s.Repo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	var art *entity.Article
	if found != nil {
		art = found.Article
	}
	if d := policy.Authorize(op, actor, art); d != policy.Allow {
		return nil, decisionError(d)
	}
	return found, nil
}

/* ───────── Mutations ───────── */

// Create creates an article owned by the caller and returns it with its owner.
// Validation failures are returned as entity.ValidationErrors.
func (s *Service) Create(ctx context.Context, actor *policy.Actor, in CreateInput) (out *repository.ArticleWithOwner, err error) {
	const name = "create"
	ctx, span := s.start(ctx, name, actor, 0)
	defer func() { s.finish(ctx, span, name, actor, 0, err) }()

	if d := policy.Authorize(policy.OpCreate, actor, nil); d != policy.Allow {
		return nil, decisionError(d)
	}

	art, err := entity.NewArticle(actor.UserID, in.Title, in.Body, entity.Status(in.Status), s.now())
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	if art.IsPublished() {
		metrics.RecordArticlePublished()
	}
	s.logger(ctx).Info("article created",
		slog.Int64("article_id", art.ID),
		slog.Int64("user_id", actor.UserID),
		slog.String("status", art.Status.String()))

	return s.reload(ctx, art.ID)
}

// Update applies the given change to an article owned by the caller.
// Returns ErrArticleNotFound when the id does not exist and ErrForbidden when
// it belongs to another user. Existence is checked before ownership.
func (s *Service) Update(ctx context.Context, actor *policy.Actor, in UpdateInput) (out *repository.ArticleWithOwner, err error) {
	const name = "update"
	ctx, span := s.start(ctx, name, actor, in.ID)
	defer func() { s.finish(ctx, span, name, actor, in.ID, err) }()

	art, err := s.authorizeMutation(ctx, policy.OpUpdate, actor, in.ID)
	if err != nil {
		return nil, err
	}

	ch := entity.ArticleChange{Title: in.Title, Body: in.Body}
	if in.Status != nil {
		st := entity.Status(*in.Status)
		ch.Status = &st
	}
	wasPublished := art.IsPublished()
	if err := art.Apply(ch, s.now()); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if err := s.Repo.Update(ctx, art); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			// deleted between the lookup and the write
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	if !wasPublished && art.IsPublished() {
		metrics.RecordArticlePublished()
	}
	s.logger(ctx).Info("article updated",
		slog.Int64("article_id", art.ID),
		slog.Int64("user_id", actor.UserID),
		slog.String("status", art.Status.String()))

	return s.reload(ctx, art.ID)
}

// Delete removes an article owned by the caller together with its comments and likes.
func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id int64) (err error) {
	const name = "delete"
	ctx, span := s.start(ctx, name, actor, id)
	defer func() { s.finish(ctx, span, name, actor, id, err) }()

	if _, err := s.authorizeMutation(ctx, policy.OpDelete, actor, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	s.logger(ctx).Info("article deleted",
		slog.Int64("article_id", id),
		slog.Int64("user_id", actor.UserID))
	return nil
}

// CountByStatus returns the number of articles per status.
func (s *Service) CountByStatus(ctx context.Context) (map[entity.Status]int64, error) {
	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	return counts, nil
}

/* ───────── ヘルパ ───────── */

func (s *Service) authorizeMutation(ctx context.Context, op policy.Operation, actor *policy.Actor, id int64) (*entity.Article, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if id <= 0 {
		return nil, ErrArticleNotFound
	}
	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if d := policy.Authorize(op, actor, art); d != policy.Allow {
		return nil, decisionError(d)
	}
	return art, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*repository.ArticleWithOwner, error) {
	out, err := s.Repo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload article: %w", err)
	}
	if out == nil {
		return nil, ErrArticleNotFound
	}
	return out, nil
}

func decisionError(d policy.Decision) error {
	switch d {
	case policy.Unauthenticated:
		return ErrUnauthenticated
	case policy.NotFound:
		return ErrArticleNotFound
	default:
		return ErrForbidden
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	if s.Logger == nil {
		return logging.FromContext(ctx)
	}
	return logging.Correlate(ctx, s.Logger)
}

func (s *Service) start(ctx context.Context, name string, actor *policy.Actor, id int64) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("article.operation", name)}
	if actor != nil {
		attrs = append(attrs, attribute.Int64("user.id", actor.UserID))
	}
	if id != 0 {
		attrs = append(attrs, attribute.Int64("article.id", id))
	}
	return tracing.StartSpan(ctx, "article."+name, attrs...)
}

// finish records the outcome on the span and in metrics and logs denials.
func (s *Service) finish(ctx context.Context, span trace.Span, name string, actor *policy.Actor, id int64, err error) {
	defer span.End()

	result := resultOf(err)
	metrics.RecordArticleOperation(name, result)

	switch result {
	case metrics.ResultSuccess, metrics.ResultInvalid:
		return
	case metrics.ResultError:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	var userID int64
	if actor != nil {
		userID = actor.UserID
	}
	s.logger(ctx).Warn("article access denied",
		slog.String("operation", name),
		slog.String("reason", result),
		slog.Int64("article_id", id),
		slog.Int64("user_id", userID))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, entity.ErrValidationFailed):
		return metrics.ResultInvalid
	case errors.Is(err, ErrArticleNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.ResultForbidden
	case errors.Is(err, ErrUnauthenticated):
		return metrics.ResultUnauthenticated
	default:
		return metrics.ResultError
	}
}
