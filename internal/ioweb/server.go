// Package ioweb serves the portal views over HTTP. Records are loaded in
// the background; until loading finishes every API route answers 503, and
// a kind of records whose load failed answers 500 with guidance.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gnames/degportal/internal/iofetch"
	"github.com/gnames/degportal/pkg/chart"
	"github.com/gnames/degportal/pkg/config"
	"github.com/gnames/degportal/pkg/record"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxPageSize       = 1000
)

// Data is everything the server shows. A nil store with a non-nil error
// means that kind failed to load.
type Data struct {
	Genes           *iofetch.Loaded[record.Gene]
	GenesErr        error
	Publications    *iofetch.Loaded[record.Publication]
	PublicationsErr error
}

// LoadFunc produces the data of the server.
type LoadFunc func(ctx context.Context) *Data

// Server is the HTTP bridge of the portal.
type Server struct {
	cfg    *config.Config
	charts *chart.Manager
	now    func() time.Time

	mu       sync.RWMutex
	loaded   bool
	data     *Data
	datasets []string
}

// New creates a Server in the loading state.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:    cfg,
		charts: chart.NewManager(chart.NewMemoryRenderer()),
		now:    time.Now,
	}
}

// Load runs load and publishes its data. It blocks until load returns.
func (s *Server) Load(ctx context.Context, load LoadFunc) {
	s.SetData(load(ctx))
}

// SetData publishes loaded data and leaves the loading state.
func (s *Server) SetData(d *Data) {
	if d == nil {
		d = &Data{}
	}
	var datasets []string
	if d.Genes != nil {
		datasets = record.DatasetNames(d.Genes.Store)
	}
	for _, err := range []error{d.GenesErr, d.PublicationsErr} {
		if err != nil {
			slog.Error("Cannot load records", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
	s.datasets = datasets
	s.loaded = true
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})
	mux.HandleFunc("GET /readyz", s.readyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/genes", s.genes)
	mux.HandleFunc("GET /api/genes/export", s.exportGenes)
	mux.HandleFunc("GET /api/publications", s.publications)
	mux.HandleFunc("GET /api/publications/export", s.exportPublications)
	mux.HandleFunc("GET /api/charts/{view}", s.chart)
	mux.HandleFunc("GET /api/datasets", s.datasetsInfo)

	return instrument(mux)
}

// Run serves on the configured port until ctx is done. Records are loaded
// in the background with load.
func (s *Server) Run(ctx context.Context, load LoadFunc) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go s.Load(ctx, load)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server starting", "port", s.cfg.Server.Port)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return ServerStartError(s.cfg.Server.Port, err)
	}
	return nil
}

func (s *Server) snapshot() (bool, *Data, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, s.data, s.datasets
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	loaded, d, _ := s.snapshot()
	switch {
	case !loaded:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprint(w, "loading")
	case d.GenesErr != nil || d.PublicationsErr != nil:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprint(w, "load failed")
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	}
}
