package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/ainews/pkg/archive"
	"github.com/umputun/ainews/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History

// Server serves generated reports, the latest analysis and run history over http
type Server struct {
	config  ConfigProvider
	store   Store
	history History // optional, nil when the archive is disabled
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store provides access to persisted run artifacts
type Store interface {
	LatestReport() (string, error)
	LatestAnalyzed() (string, error)
	LoadAnalyzed(path string) ([]domain.ScoredTopic, error)
	Open(name string) (string, error)
}

// History provides access to archived runs
type History interface {
	Recent(ctx context.Context, limit int) ([]archive.Run, error)
	Top(ctx context.Context, since time.Time, limit int) ([]archive.TopicRecord, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFeedConfig() (title, baseURL string)
}

// New initializes a new server instance. History may be nil.
func New(cfg ConfigProvider, store Store, history History, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		store:   store,
		history: history,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("ainews", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.latestReportHandler)
	s.router.HandleFunc("GET /reports/{name}", s.reportHandler)
	s.router.HandleFunc("GET /rss", s.rssHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /topics", s.topicsHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /history", s.historyHandler)
		r.HandleFunc("GET /history/top", s.historyTopHandler)
	})
}
