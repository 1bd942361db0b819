package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"listing-site/internal/adapters/web"
	"listing-site/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig - параметры HTTP-сервера
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает маршруты сайта и JSON API
func NewRouter(cfg ServerConfig, site *SiteHandlers, api *APIHandlers, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.WriteTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(web.Assets()))))

	r.Get("/", site.HandleCatalog)
	r.Get("/"+web.PageCatalog, site.HandleCatalog)
	r.Post("/refresh", site.HandleRefresh)
	r.Get("/"+web.PageConsulting, site.HandleConsultingForm)
	r.Post("/"+web.PageConsulting, site.HandleConsultingSubmit)
	r.Get("/"+web.PageInfo, site.HandleInfo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
			MaxAge:         300,
		}))

		r.Get("/listings", api.HandleListings)
		r.Get("/filters/options", api.HandleFilterOptions)
		r.Get("/catalog/status", api.HandleStatus)
		r.Post("/catalog/refresh", api.HandleRefresh)
		r.Post("/consulting", api.HandleConsulting)
	})

	return r
}

func NewServer(cfg ServerConfig, site *SiteHandlers, api *APIHandlers, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      NewRouter(cfg, site, api, baseLogger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server...", nil)
	return s.httpServer.Shutdown(ctx)
}
