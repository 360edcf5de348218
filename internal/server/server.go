// Package server exposes the stored lesson over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/alexchase32/lessbuilder/internal/config"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// maxBodyBytes caps the size of an uploaded lesson.
const maxBodyBytes = 8 << 20

// Server serves the lesson persistence API.
type Server struct {
	repo   store.LessonRepo
	cfg    config.ServerConfig
	log    *logging.Logger
	router chi.Router
}

// lessonResponse is the body of GET /api/lesson.
type lessonResponse struct {
	Lesson *lesson.Lesson `json:"lesson"`
}

// saveResponse is the body of POST, PUT and DELETE /api/lesson.
type saveResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// New creates a server backed by repo.
func New(repo store.LessonRepo, cfg config.ServerConfig, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{repo: repo, cfg: cfg, log: log.With("component", "server")}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/lesson", func(r chi.Router) {
		r.Get("/", s.getLesson)
		r.Post("/", s.saveLesson)
		r.Put("/", s.saveLesson)
		r.Delete("/", s.clearLesson)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	l, err := s.repo.Get(r.Context())
	if err != nil {
		s.log.Error("load lesson", "error", err)
		respondJSON(w, http.StatusInternalServerError, saveResponse{Error: "failed to load lesson"})
		return
	}
	respondJSON(w, http.StatusOK, lessonResponse{Lesson: l})
}

func (s *Server) saveLesson(w http.ResponseWriter, r *http.Request) {
	var l lesson.Lesson
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&l); err != nil {
		respondJSON(w, http.StatusBadRequest, saveResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if err := lesson.MigrateLesson(&l); err != nil {
		respondJSON(w, http.StatusBadRequest, saveResponse{Error: err.Error()})
		return
	}
	if err := lesson.Validate(&l); err != nil {
		respondJSON(w, http.StatusBadRequest, saveResponse{Error: err.Error()})
		return
	}

	if err := s.repo.Put(r.Context(), &l); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, lesson.ErrInvalid) {
			status = http.StatusBadRequest
		}
		s.log.Error("save lesson", "error", err)
		respondJSON(w, status, saveResponse{Error: err.Error()})
		return
	}
	s.log.Info("lesson saved", "name", l.Name, "blocks", len(l.Blocks))
	respondJSON(w, http.StatusOK, saveResponse{Success: true})
}

func (s *Server) clearLesson(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Clear(r.Context()); err != nil {
		s.log.Error("clear lesson", "error", err)
		respondJSON(w, http.StatusInternalServerError, saveResponse{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, saveResponse{Success: true})
}

// requestLogger writes one log line per request to the file logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
