package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/config"
	"github.com/dealdesk/memogen/internal/model"
	"github.com/dealdesk/memogen/pkg/portkey"
)

// Runner executes one memorandum request end to end.
type Runner interface {
	Run(ctx context.Context, req model.MemoRequest, traceID string) (*model.MemoResult, error)
}

// Server is the HTTP front end: uploads in, memoranda out.
type Server struct {
	pipeline  Runner
	llm       portkey.Client
	tempDir   string
	maxMemory int64
	staticDir string
	port      int
}

// New creates a Server. The upload temp directory is created if missing.
func New(p Runner, llm portkey.Client, cfg *config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "server: create upload dir")
	}

	return &Server{
		pipeline:  p,
		llm:       llm,
		tempDir:   cfg.Upload.TempDir,
		maxMemory: int64(cfg.Upload.MaxMemoryMB) << 20,
		staticDir: cfg.Server.StaticDir,
		port:      cfg.Server.Port,
	}, nil
}

// Routes builds the router. The SPA front end calls the API from other
// origins during development, so CORS is open.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/download", s.handleDownload)
	r.Post("/feedback", s.handleFeedback)
	r.Get("/*", s.handleStatic())

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		srv.Shutdown(context.Background()) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", s.port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
