package worker

import (
	"context"
	"fmt"
	"log/slog"

	"blog-api/internal/domain/entity"
	"blog-api/internal/observability/metrics"
	"blog-api/internal/resilience/retry"
)

// Job names, used as metric labels.
const (
	JobPurgeSessions        = "purge_sessions"
	JobRefreshArticleGauges = "refresh_article_gauges"
)

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// ArticleCounter counts articles per status.
type ArticleCounter interface {
	CountByStatus(ctx context.Context) (map[entity.Status]int64, error)
}

// PurgeSessionsJob removes sessions whose expiry has passed. A dropped
// connection is retried with retry.Transactional before the run fails.
func PurgeSessionsJob(schedule string, p SessionPurger, logger *slog.Logger) Job {
	return Job{
		Name:     JobPurgeSessions,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			var n int64
			err := retry.Do(ctx, retry.Transactional(), func() error {
				var err error
				n, err = p.PurgeExpiredSessions(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("purge expired sessions: %w", err)
			}
			metrics.RecordSessionsPurged(n)
			logger.Info("expired sessions purged", slog.Int64("count", n))
			return nil
		},
	}
}

// RefreshArticleGaugesJob publishes the article count per status. Statuses
// without rows are reported as zero.
func RefreshArticleGaugesJob(schedule string, c ArticleCounter) Job {
	return Job{
		Name:     JobRefreshArticleGauges,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			var counts map[entity.Status]int64
			err := retry.Do(ctx, retry.Transactional(), func() error {
				var err error
				counts, err = c.CountByStatus(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("count articles: %w", err)
			}
			gauges := map[string]int64{
				string(entity.StatusDraft):     0,
				string(entity.StatusPublished): 0,
			}
			for status, n := range counts {
				gauges[string(status)] = n
			}
			metrics.UpdateArticlesTotal(gauges)
			return nil
		},
	}
}
