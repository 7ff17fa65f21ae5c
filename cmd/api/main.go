package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	secconfig "blog-api/internal/config"
	"blog-api/internal/infra/adapter/persistence"
	"blog-api/internal/infra/db"
	"blog-api/internal/observability/logging"
	"blog-api/internal/observability/metrics"
	"blog-api/internal/observability/slo"
	"blog-api/internal/observability/tracing"
	"blog-api/internal/resilience/circuitbreaker"
	"blog-api/pkg/config"

	artUC "blog-api/internal/usecase/article"

	hhttp "blog-api/internal/handler/http"
	harticle "blog-api/internal/handler/http/article"
	hauth "blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/requestid"
	authservice "blog-api/internal/service/auth"

	_ "blog-api/docs" // swagger docs
)

// @title           Blog API
// @version         1.0
// @description     ブログ記事の下書き・公開を管理する REST API
// @description     公開記事の閲覧は認証不要、記事の作成・更新・削除と下書きの閲覧には認証が必要です。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description サインインで発行されたトークンを "Bearer {token}" 形式で指定してください。

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	securityCfg, err := loadSecurityConfig(logger)
	if err != nil {
		return err
	}
	secret, err := config.RequireEnv(securityCfg.GetJWTSecretEnv())
	if err != nil {
		return err
	}
	if err := validateJWTSecret(secret); err != nil {
		return fmt.Errorf("%s: %w", securityCfg.GetJWTSecretEnv(), err)
	}

	shutdownTracer := tracing.InitTracer(tracing.Config{
		ServiceName: "blog-api",
		SampleRatio: config.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
	})
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shut down tracer", slog.Any("error", err))
		}
	}()

	databaseURL, err := config.RequireEnv("DATABASE_URL")
	if err != nil {
		return err
	}
	database, dialect, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		return err
	}

	var querier db.Querier = database
	var breaker hhttp.BreakerStateReader
	if config.GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", true) {
		cb := circuitbreaker.NewDBCircuitBreaker(database)
		querier, breaker = cb, cb
		logger.Info("database circuit breaker enabled")
	}

	repos, err := persistence.New(dialect, db.Instrument(querier))
	if err != nil {
		return err
	}

	tokens, err := authservice.NewTokenService([]byte(secret), securityCfg.GetTokenTTL())
	if err != nil {
		return err
	}
	authSvc := authservice.NewAuthService(repos.Users, repos.Sessions, tokens,
		authservice.WithMinPasswordLength(securityCfg.GetMinPasswordLength()),
		authservice.WithBcryptCost(securityCfg.GetBcryptCost()))
	artSvc := &artUC.Service{Repo: repos.Articles}

	corsCfg, err := hhttp.LoadCORSConfig()
	if err != nil {
		return fmt.Errorf("load CORS configuration: %w", err)
	}

	version := config.GetEnvString("VERSION", "dev")
	perMinute, burst := securityCfg.GetAuthRateLimit()
	authLimiter := hhttp.NewRateLimiter(perMinute, burst)
	authLimiter.TrustProxyHeaders = config.GetEnvBool("TRUST_PROXY_HEADERS", false)

	mux := setupRoutes(routeDeps{
		database:    database,
		breaker:     breaker,
		version:     version,
		auth:        authSvc,
		articles:    artSvc,
		authLimiter: authLimiter,
	})
	handler := applyMiddleware(logger, mux, authSvc, corsCfg)

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version),
			slog.String("dialect", string(dialect)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		refreshGauges(gctx, logger, artSvc, database,
			config.GetEnvDuration("METRICS_REFRESH_INTERVAL", 30*time.Second))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// loadSecurityConfig reads SECURITY_CONFIG_PATH when set and falls back to
// the built-in defaults otherwise.
func loadSecurityConfig(logger *slog.Logger) (*secconfig.SecurityConfig, error) {
	path := config.GetEnvString("SECURITY_CONFIG_PATH", "")
	if path == "" {
		logger.Info("SECURITY_CONFIG_PATH not set, using default security configuration")
		return secconfig.DefaultSecurityConfig(), nil
	}
	cfg, err := secconfig.LoadSecurityConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load security config %s: %w", path, err)
	}
	return cfg, nil
}

// validateJWTSecret rejects short and well-known secrets.
func validateJWTSecret(secret string) error {
	if len(secret) < authservice.MinSecretLength {
		return fmt.Errorf("must be at least %d characters", authservice.MinSecretLength)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	lower := strings.ToLower(secret)
	for _, weak := range []string{"secret", "password", "changeme", "default"} {
		if strings.Trim(strings.ReplaceAll(lower, weak, ""), "0123456789_-") == "" {
			return fmt.Errorf("must not be a repetition of %q", weak)
		}
	}
	return nil
}

type routeDeps struct {
	database    *sql.DB
	breaker     hhttp.BreakerStateReader
	version     string
	auth        hauth.Authenticator
	articles    *artUC.Service
	authLimiter *hhttp.RateLimiter
}

// setupRoutes registers all HTTP routes.
func setupRoutes(d routeDeps) *http.ServeMux {
	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: d.database, Version: d.version, Breaker: d.breaker})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: d.database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI（認証不要）
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hauth.Register(mux, d.auth, d.authLimiter.Limit)
	harticle.Register(mux, d.articles)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: CORS → Request ID → Tracing → Metrics → Recovery →
// Logging → Input validation → Timeout → Authentication.
func applyMiddleware(logger *slog.Logger, handler http.Handler, auth hauth.Authenticator, corsCfg *hhttp.CORSConfig) http.Handler {
	if corsCfg.Enabled() {
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsCfg.AllowedOrigins),
			slog.Int("max_age", corsCfg.MaxAge))
	}

	requestTimeout := config.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second)
	maxBody := int64(config.GetEnvInt("HTTP_MAX_BODY_BYTES", int(hhttp.DefaultMaxBodyBytes)))

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hauth.Authenticate(auth)(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.InputValidation(maxBody)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS(corsCfg, logger)(chain)

	return chain
}

// refreshGauges publishes the SLO window, connection pool stats and the
// per-status article counts until ctx is done.
func refreshGauges(ctx context.Context, logger *slog.Logger, svc *artUC.Service, database *sql.DB, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		slo.Default.Flush()
		stats := database.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

		counts, err := svc.CountByStatus(ctx)
		if err != nil {
			logger.Warn("failed to refresh article gauges", slog.Any("error", err))
			continue
		}
		byStatus := make(map[string]int64, len(counts))
		for st, n := range counts {
			byStatus[st.String()] = n
		}
		metrics.UpdateArticlesTotal(byStatus)
	}
}
