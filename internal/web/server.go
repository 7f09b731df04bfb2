// Package web serves the rain-reduction calculator as an HTML form and a
// small JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

const shutdownTimeout = 5 * time.Second

// Options configure a Server.
type Options struct {
	Version        string
	ScheduledOvers int
	Logger         zerolog.Logger
	// Recorder may be nil; /metrics is only mounted when it is set.
	Recorder *metrics.Recorder
}

// Server is safe for concurrent use. The only mutable state is the default
// scheduled overs, which SetDefaults may change at any time.
type Server struct {
	version  string
	logger   zerolog.Logger
	recorder *metrics.Recorder
	tpl      *template.Template

	defaultOvers atomic.Int64
}

// New builds a Server. A zero ScheduledOvers falls back to the league default.
func New(opts Options) *Server {
	s := &Server{
		version:  opts.Version,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		tpl:      template.Must(template.New("page").Parse(pageHTML)),
	}
	s.SetDefaults(opts.ScheduledOvers)
	return s
}

// SetDefaults changes the scheduled overs used when a request omits them.
func (s *Server) SetDefaults(scheduledOvers int) {
	if scheduledOvers == 0 {
		scheduledOvers = target.DefaultScheduledOvers
	}
	s.defaultOvers.Store(int64(scheduledOvers))
}

// DefaultScheduledOvers returns the current default.
func (s *Server) DefaultScheduledOvers() int {
	return int(s.defaultOvers.Load())
}

// Handler returns the routed handler wrapped in request logging and metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/calc", s.handleCalc)
	mux.HandleFunc("/api/target", s.handleAPI)
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.recorder != nil {
		mux.Handle("/metrics", s.recorder.Handler())
	}
	return requestLogger(s.logger, s.recorder, mux)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("web server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("web server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// compute runs the calculator and records the outcome.
func (s *Server) compute(r *http.Request, source string, in target.Input) (target.Result, error) {
	res, err := target.Compute(in)
	s.recorder.RecordCalculation(source, err)
	logCalculation(zerolog.Ctx(r.Context()), source, in, res, err)
	return res, err
}
