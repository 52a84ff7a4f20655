// Package preview serves a generated site over HTTP for local browsing.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"famtree/internal/logging"
	"famtree/internal/manifest"
)

// Server exposes the output directory plus a few helper routes.
type Server struct {
	router chi.Router
	root   string
	log    *slog.Logger
}

// NewServer creates a server rooted at the site output directory.
func NewServer(root string, log *slog.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Server{root: root, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/person/{key}", s.handlePerson)
	r.Handle("/*", http.FileServer(http.Dir(s.root)))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handlePerson redirects a person identifier or pointer to its page.
func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(chi.URLParam(r, "key"), "@")
	m, err := manifest.Read(filepath.Join(s.root, manifest.FileName))
	if err != nil {
		s.log.Warn("manifest unavailable", logging.Error(err))
		http.Error(w, "manifest unavailable", http.StatusServiceUnavailable)
		return
	}
	for _, p := range m.People {
		if p.ID == key || strings.Trim(p.Pointer, "@") == key {
			http.Redirect(w, r, "/"+p.Path, http.StatusFound)
			return
		}
	}
	http.NotFound(w, r)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Debug("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", sw.status),
				logging.Duration("duration", time.Since(start)),
				logging.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ListenAndServe runs handler on bind until ctx is cancelled.
func ListenAndServe(ctx context.Context, bind string, handler http.Handler, log *slog.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}
	httpServer := &http.Server{
		Addr:              bind,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("preview server listening", logging.String("bind", bind))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
