package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/internal/config"
	"github.com/heartmarshall/extrato-backend/internal/transport/middleware"
)

// tokenValidator verifies bearer tokens for the Auth middleware.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// metricsSource records requests and serves the collected metrics.
type metricsSource interface {
	ObserveRequest(route, method string, status int, d time.Duration)
	Handler() http.Handler
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Statement *StatementHandler
	Admin     *AdminHandler
	Import    *ImportHandler
}

// RouterConfig carries the cross-cutting pieces the router wraps around
// the handlers.
type RouterConfig struct {
	Logger             *slog.Logger
	CORS               config.CORSConfig
	Tokens             tokenValidator
	RateLimiter        *middleware.RateLimiter
	StatementPerSecond int
	// Metrics is optional; when set, requests are measured and the
	// collectors are served at MetricsPath.
	Metrics     metricsSource
	MetricsPath string
}

// NewRouter mounts every route on a ServeMux and wraps it in the global
// middleware chain. Admin routes require an admin token; the public
// statement is rate limited per client IP.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	admin := middleware.Middleware(middleware.RequireAdmin)
	limited := cfg.RateLimiter.Limit(cfg.StatementPerSecond)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.Handle("GET /api/extrato/{slug}", limited(http.HandlerFunc(h.Statement.Get)))

	mux.Handle("GET /api/admin/pessoas", admin(http.HandlerFunc(h.Admin.ListPeople)))
	mux.Handle("POST /api/admin/pessoas/telefones", admin(http.HandlerFunc(h.Admin.UpdatePhones)))
	mux.Handle("PATCH /api/admin/pessoas/{id}/ativo", admin(http.HandlerFunc(h.Admin.SetActive)))
	mux.Handle("POST /api/admin/importacao-csv", admin(http.HandlerFunc(h.Import.Import)))
	mux.Handle("POST /api/admin/importacao/csv", admin(http.HandlerFunc(h.Import.Import)))

	chain := []middleware.Middleware{
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(cfg.Tokens),
	}

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, cfg.Metrics.Handler())
		chain = append(chain, middleware.Metrics(cfg.Metrics))
	}

	return middleware.Chain(chain...)(mux)
}
