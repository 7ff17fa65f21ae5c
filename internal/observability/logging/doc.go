// Package logging builds the slog loggers used by the API and the worker and
// carries a request-scoped logger through context.Context.
//
// The HTTP logging middleware stores a logger correlated with the request id
// and trace id; handlers and usecases fetch it back:
//
//	logger := logging.FromContext(r.Context())
//	logger.Info("article published", slog.Int64("article_id", id))
package logging
