package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"acadiasafe/internal/api/handlers/http/admin"
	"acadiasafe/internal/api/handlers/http/auth"
	"acadiasafe/internal/api/handlers/http/campus"
	"acadiasafe/internal/api/handlers/http/contacts"
	"acadiasafe/internal/api/handlers/http/escorts"
	"acadiasafe/internal/api/handlers/http/incidents"
	"acadiasafe/internal/api/handlers/http/sos"
	"acadiasafe/internal/api/handlers/http/system"
	"acadiasafe/internal/api/handlers/http/walks"
	"acadiasafe/internal/config"
	"acadiasafe/internal/metrics"
	"acadiasafe/internal/middleware"
	"acadiasafe/internal/render"
	"acadiasafe/internal/service"
	"acadiasafe/pkg/e"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

// Handlers groups one handler per resource so tests can build a router
// around mocks.
type Handlers struct {
	Auth      *auth.Handler
	Contacts  *contacts.Handler
	SOS       *sos.Handler
	Incidents *incidents.Handler
	Escorts   *escorts.Handler
	Walks     *walks.Handler
	Campus    *campus.Handler
	Admin     *admin.Handler
	System    *system.Handler
}

func NewHandlers(logger *slog.Logger, svc *service.Service, checks map[string]system.Pinger) Handlers {
	return Handlers{
		Auth:      auth.NewHandler(logger, svc.Auth),
		Contacts:  contacts.NewHandler(logger, svc.Contacts),
		SOS:       sos.NewHandler(logger, svc.SOS),
		Incidents: incidents.NewHandler(logger, svc.Incidents),
		Escorts:   escorts.NewHandler(logger, svc.Escorts),
		Walks:     walks.NewHandler(logger, svc.Walks),
		Campus:    campus.NewHandler(logger, svc.Campus),
		Admin:     admin.NewHandler(logger, svc),
		System:    system.NewHandler(logger, checks),
	}
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc *service.Service, m *metrics.Metrics, checks map[string]system.Pinger) *Server {
	h := NewHandlers(logger, svc, checks)
	r := InitRouter(ctx, cfg, h, svc.Auth, m, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func InitRouter(ctx context.Context, cfg *config.Config, h Handlers, tokens middleware.TokenParser, m *metrics.Metrics, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, r, logger, e.WithDetail(e.ErrNotFound, "Not found"))
	})

	r.Get("/", h.System.SystemHealth)
	r.Get("/health", h.System.SystemHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/", h.System.SystemHealth)
		api.Get("/health", h.System.SystemHealth)

		api.Route("/auth", func(ar chi.Router) {
			ar.Group(func(pub chi.Router) {
				pub.Use(middleware.Limit(ctx, 2, 10, 10*time.Minute, logger))
				pub.Post("/signup", h.Auth.Signup)
				pub.Post("/login", h.Auth.Login)
			})
			ar.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(tokens, logger))
				pr.Get("/me", h.Auth.Me)
				pr.Put("/profile", h.Auth.UpdateProfile)
			})
		})

		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Auth(tokens, logger))

			pr.Route("/contacts", func(cr chi.Router) {
				cr.Get("/", h.Contacts.List)
				cr.Post("/", h.Contacts.Add)
				cr.Delete("/{id}", h.Contacts.Delete)
			})

			pr.Route("/sos", func(sr chi.Router) {
				sr.Post("/", h.SOS.Create)
				sr.Get("/active", h.SOS.Active)
				sr.Put("/{id}/cancel", h.SOS.Cancel)
			})

			pr.Route("/incidents", func(ir chi.Router) {
				ir.Post("/", h.Incidents.Create)
				ir.Get("/my", h.Incidents.Mine)
				ir.Get("/{id}", h.Incidents.Get)
			})

			pr.Route("/friend-walk", func(wr chi.Router) {
				wr.Post("/", h.Walks.Start)
				wr.Get("/active", h.Walks.Active)
				wr.Put("/{id}/update", h.Walks.UpdateLocation)
				wr.Put("/{id}/extend", h.Walks.Extend)
				wr.Put("/{id}/complete", h.Walks.Complete)
			})
		})

		api.Route("/escorts", func(er chi.Router) {
			// unauthenticated demo assignment
			er.Put("/{id}/assign", h.Escorts.Assign)

			er.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(tokens, logger))
				pr.Post("/", h.Escorts.Create)
				pr.Get("/active", h.Escorts.Active)
				pr.Put("/{id}/cancel", h.Escorts.Cancel)
			})
		})

		api.Get("/alerts", h.Campus.Alerts)
		api.Get("/alerts/{id}", h.Campus.Alert)
		api.Get("/locations", h.Campus.Locations)
		api.Post("/seed", h.Campus.Seed)

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey, logger))
			ar.Use(middleware.Limit(ctx, 5, 20, 10*time.Minute, logger))

			ar.Get("/incidents", h.Admin.IncidentList)
			ar.Put("/incidents/{id}", h.Admin.IncidentUpdateStatus)
			ar.Get("/sos", h.Admin.SOSList)
			ar.Put("/sos/{id}/resolve", h.Admin.SOSResolve)
			ar.Post("/alerts", h.Admin.AlertBroadcast)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
