// Package server exposes the extraction pipelines as a JSON API and serves
// the display client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"mspro-labs/tapboard/internal/metrics"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/taplist"
	"mspro-labs/tapboard/internal/web"
)

var logger = log.New(os.Stdout, "SERVER: ", log.LstdFlags|log.Lshortfile)

// Source produces the records behind the API.
type Source interface {
	FetchCheckins(ctx context.Context) ([]models.CheckinRecord, error)
	FetchTaps(ctx context.Context) ([]models.TapRecord, error)
}

// Config holds everything the server needs besides its Source.
type Config struct {
	Addr      string
	StaticDir string // built display client; the embedded placeholder is used when missing
	BeersFile string
	Metrics   *metrics.Metrics
}

type Server struct {
	src     Source
	cfg     Config
	metrics *metrics.Metrics
	mux     *http.ServeMux
	server  *http.Server
}

func New(src Source, cfg Config) *Server {
	s := &Server{
		src:     src,
		cfg:     cfg,
		metrics: cfg.Metrics,
		mux:     http.NewServeMux(),
	}
	s.routes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/checkins", s.handleCheckins)
	s.mux.HandleFunc("GET /api/taps", s.handleTaps)
	s.mux.HandleFunc("GET /api/beers", s.handleBeers)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.Handle("/", spaHandler(s.staticFS()))
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks until the server stops. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	logger.Printf("Serving on %s", s.cfg.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCheckins(w http.ResponseWriter, r *http.Request) {
	records, err := s.src.FetchCheckins(r.Context())
	if err != nil {
		logger.Printf("Check-ins error: %v", err)
		s.writeError(w, "/api/checkins", "Failed to fetch check-ins")
		return
	}
	s.writeJSON(w, "/api/checkins", http.StatusOK, records)
}

func (s *Server) handleTaps(w http.ResponseWriter, r *http.Request) {
	taps, err := s.src.FetchTaps(r.Context())
	if err != nil {
		logger.Printf("Taps error: %v", err)
		s.writeError(w, "/api/taps", "Failed to fetch taps")
		return
	}
	s.writeJSON(w, "/api/taps", http.StatusOK, taps)
}

func (s *Server) handleBeers(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.cfg.BeersFile)
	if err != nil {
		logger.Printf("Beers file error: %v", err)
		s.writeError(w, "/api/beers", "Failed to fetch beers")
		return
	}
	defer f.Close()

	taps, err := taplist.ParseBeersFile(f)
	if err != nil {
		logger.Printf("Beers file error: %v", err)
		s.writeError(w, "/api/beers", "Failed to fetch beers")
		return
	}
	s.writeJSON(w, "/api/beers", http.StatusOK, taps)
}

func (s *Server) writeError(w http.ResponseWriter, route, msg string) {
	s.writeJSON(w, route, http.StatusInternalServerError, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, v any) {
	s.metrics.ObserveRequest(route, status)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Printf("Failed to write %s response: %v", route, err)
	}
}

func (s *Server) staticFS() fs.FS {
	if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
		return os.DirFS(s.cfg.StaticDir)
	}
	logger.Printf("No display client at '%s', serving placeholder page", s.cfg.StaticDir)
	return web.GetStaticFS()
}

// spaHandler serves files from root and answers every other path with
// index.html so client-side routes survive a reload.
func spaHandler(root fs.FS) http.Handler {
	files := http.FileServerFS(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			files.ServeHTTP(w, r)
			return
		}
		if info, err := fs.Stat(root, name); err != nil || info.IsDir() {
			http.ServeFileFS(w, r, root, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
}
