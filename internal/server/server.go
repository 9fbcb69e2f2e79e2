package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/kovertlabs/deepcover/internal/boost"
	"github.com/kovertlabs/deepcover/internal/cell"
	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/database"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/glitch"
	"github.com/kovertlabs/deepcover/internal/handler"
	"github.com/kovertlabs/deepcover/internal/league"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/lootbox"
	"github.com/kovertlabs/deepcover/internal/metrics"
	"github.com/kovertlabs/deepcover/internal/player"
	"github.com/kovertlabs/deepcover/internal/task"
)

// Services bundles everything the router exposes. All fields are required
// except Reload and IsAdmin, which gate the admin endpoints.
type Services struct {
	Player  player.Service
	Economy economy.Service
	Daily   daily.Service
	Task    task.Service
	Lootbox lootbox.Service
	Boost   boost.Service
	Glitch  glitch.Service
	Cell    cell.Service
	League  league.Service

	Reload  handler.ReloadFunc
	IsAdmin func(int64) bool
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/player", func(r chi.Router) {
			r.Post("/login", handler.HandleLogin(svcs.Player))
			r.Get("/state", handler.HandleGetState(svcs.Player))
			r.Post("/sync", handler.HandleSyncState(svcs.Player))
		})

		r.Route("/game", func(r chi.Router) {
			r.Post("/tap", handler.HandleTap(svcs.Economy))
			r.Post("/meta-tap", handler.HandleMetaTap(svcs.Economy))
			r.Get("/upgrades", handler.HandleListUpgrades(svcs.Economy))
			r.Post("/upgrades/buy", handler.HandleBuyUpgrade(svcs.Economy))
		})

		r.Route("/daily", func(r chi.Router) {
			r.Get("/event", handler.HandleGetDailyEvent(svcs.Daily))
			r.Post("/combo/claim", handler.HandleClaimCombo(svcs.Daily))
			r.Post("/cipher/claim", handler.HandleClaimCipher(svcs.Daily))
		})

		// Task routes
		taskHandler := handler.NewTaskHandler(svcs.Task)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/daily", taskHandler.HandleListDaily)
			r.Post("/daily/claim", taskHandler.HandleClaimDaily)
			r.Get("/special", taskHandler.HandleListSpecial)
			r.Post("/special/purchase", taskHandler.HandlePurchaseSpecial)
			r.Post("/special/claim", taskHandler.HandleClaimSpecial)
		})

		r.Get("/lootboxes", handler.HandleListLootboxes(svcs.Lootbox)) // Handle /lootboxes exactly
		r.Route("/lootboxes", func(r chi.Router) {
			r.Get("/", handler.HandleListLootboxes(svcs.Lootbox))
			r.Post("/open", handler.HandleOpenLootbox(svcs.Lootbox))
		})

		r.Get("/boosts", handler.HandleListBoosts(svcs.Boost))
		r.Route("/boosts", func(r chi.Router) {
			r.Get("/", handler.HandleListBoosts(svcs.Boost))
			r.Post("/buy", handler.HandleBuyBoost(svcs.Boost))
		})

		r.Route("/glitch", func(r chi.Router) {
			r.Get("/pending", handler.HandleGetPendingGlitches(svcs.Glitch))
			r.Post("/shown", handler.HandleMarkGlitchShown(svcs.Glitch))
			r.Post("/submit", handler.HandleSubmitGlitchCode(svcs.Glitch))
		})

		// Cell routes
		cellHandler := handler.NewCellHandler(svcs.Cell)
		r.Get("/cell", cellHandler.HandleView)
		r.Route("/cell", func(r chi.Router) {
			r.Post("/create", cellHandler.HandleCreate)
			r.Post("/join", cellHandler.HandleJoin)
			r.Post("/leave", cellHandler.HandleLeave)
			r.Post("/informant", cellHandler.HandleHireInformant)
		})

		r.Get("/league", handler.HandleGetPlayerLeague(svcs.League))
		r.Get("/leagues", handler.HandleListLeagues(svcs.League))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.League))

		// Admin routes
		adminHandler := handler.NewAdminHandler(svcs.Reload, svcs.Daily, svcs.IsAdmin)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/config/reload", adminHandler.HandleReloadConfig)
			r.Post("/daily/rotate", adminHandler.HandleRotateDailyEvent)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "X-API-Key") || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
