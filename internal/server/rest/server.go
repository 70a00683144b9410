// Package rest exposes the wotracker HTTP API: sign-in and session
// endpoints, the scoped work-order listing and work-order history.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/auth"
	"github.com/dmitrijs2005/wotracker/internal/server/config"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Authenticator is the sign-in surface the API depends on.
type Authenticator interface {
	Login(ctx context.Context, userName, password string) (string, *auth.Session, error)
	Session(ctx context.Context, token string) (*auth.Session, error)
	Logout(ctx context.Context, session *auth.Session) error
}

// WorkOrders serves scoped work-order reads.
type WorkOrders interface {
	List(ctx context.Context, identity models.Identity, req models.PageRequest) (*models.WorkOrderPage, error)
	History(ctx context.Context, identity models.Identity, number string) ([]models.WorkOrderHistoryEntry, error)
}

// Server wires handlers and middleware onto a chi router.
type Server struct {
	cfg        *config.Config
	auth       Authenticator
	workOrders WorkOrders
	log        logging.Logger
}

// NewServer constructs a Server.
func NewServer(cfg *config.Config, a Authenticator, wo WorkOrders, log logging.Logger) *Server {
	return &Server{cfg: cfg, auth: a, workOrders: wo, log: log}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(RateLimiter(RateLimitConfig{
				RequestsPerSecond: s.cfg.LoginRateLimit,
				Burst:             s.cfg.LoginBurst,
			})).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/config", s.handleConfig)
			r.With(s.RequireSession).Get("/session", s.handleSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.RequireSession)
			r.Get("/workorders", s.handleWorkOrders)
			r.Get("/workOrderHistory", s.handleWorkOrderHistory)
		})
	})

	return r
}

// Run serves HTTP on cfg.HTTPAddr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "HTTP server listening", "addr", s.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info(ctx, "HTTP server stopped")
	return nil
}
