package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quarzen/tradebook/internal/api/auth"
	"github.com/quarzen/tradebook/internal/api/handlers"
	apiMiddleware "github.com/quarzen/tradebook/internal/api/middleware"
	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/journal/store"
	"github.com/quarzen/tradebook/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe (database ping)
//   - POST /api/v1/auth/signup - Account creation
//   - POST /api/v1/auth/login - User authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - /api/v1/trades/* - Trade CRUD and mistake tagging (owner-scoped)
//   - GET /api/v1/symbols - User's distinct tickers
//   - GET /api/v1/mistakes - Mistake catalog
//   - GET /api/v1/analytics/report - Full analytics report
func NewRouter(jwtService *auth.JWTService, journalStore store.Store) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(traceRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	// No-op unless metrics.InitRegistry was called at startup.
	r.Use(metrics.NewHTTPMetrics().Middleware())

	// Health routes - unauthenticated
	healthHandler := handlers.NewHealthHandler(journalStore)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(journalStore, jwtService)
	tradeHandler := handlers.NewTradeHandler(journalStore)
	symbolHandler := handlers.NewSymbolHandler(journalStore)
	mistakeHandler := handlers.NewMistakeHandler(journalStore)
	analyticsHandler := handlers.NewAnalyticsHandler(journalStore)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			// Public endpoints
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Authenticated endpoint
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))

			r.Route("/trades", func(r chi.Router) {
				r.Post("/", tradeHandler.Create)
				r.Get("/", tradeHandler.List)
				r.Get("/{id}", tradeHandler.Get)
				r.Put("/{id}", tradeHandler.Update)
				r.Delete("/{id}", tradeHandler.Delete)
				r.Put("/{id}/mistakes", tradeHandler.SetMistakes)
			})

			r.Get("/symbols", symbolHandler.List)
			r.Get("/mistakes", mistakeHandler.List)
			r.Get("/analytics/report", analyticsHandler.Report)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// traceRequests opens a server span per request. The span is renamed to the
// matched chi route pattern after the handler runs, so /api/v1/trades/17 and
// /api/v1/trades/42 share one span name. Healthcheck requests are not traced.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isHealthPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := telemetry.StartSpan(r.Context(),
			r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				telemetry.HTTPMethod(r.Method),
				telemetry.ClientAddr(r.RemoteAddr),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		if rctx := chi.RouteContext(ctx); rctx != nil {
			if route := rctx.RoutePattern(); route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(telemetry.HTTPRoute(route))
			}
		}
		span.SetAttributes(telemetry.HTTPStatus(ww.Status()))
		if ww.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(ww.Status()))
		}
	})
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyRemoteAddr, r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			logger.KeyRequestID, requestID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
