// Package server exposes authors reports over HTTP.
//
// Each request to /authors resolves the configured project afresh, so the
// report always reflects the lock file on disk. Query parameters override
// the aggregation options the server was started with:
//
//	GET /authors?format=json&hide_emails=true&by_crate=false
//
// Every response carries an X-Request-Id header, echoed from the request when
// the client supplies one.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
	"github.com/matzehuels/cargoauthors/pkg/render"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Path     string          // project path resolved on every request
	Defaults authors.Options // options used when a query parameter is absent
	Format   render.Format   // format used when ?format is absent (default: json)
	Logger   *log.Logger     // request logger (default: log.Default())
}

// Server serves authors reports for one project.
type Server struct {
	src    authors.Source
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a Server resolving cfg.Path through src.
func New(src authors.Source, cfg Config) *Server {
	if cfg.Format == "" {
		cfg.Format = render.FormatJSON
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{src: src, cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/authors", s.handleAuthors)
	s.router = r

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "failed to listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down", "addr", ln.Addr().String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	format, opts, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	m, err := authors.Run(r.Context(), s.src, s.cfg.Path, opts)
	if err != nil {
		s.writeError(w, r, resolutionStatus(err), err)
		return
	}

	var buf bytes.Buffer
	report := render.Report{Entries: m, ByCrate: opts.ByCrate}
	if err := render.Write(&buf, format, report, render.Options{}); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// resolutionStatus maps a resolution failure to a response status: 404 when
// the configured project is missing, 422 when it exists but cannot be
// resolved.
func resolutionStatus(err error) int {
	if errs.Is(err, errs.ErrCodeInvalidPath) || errs.Is(err, errs.ErrCodeManifestNotFound) {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

// parseQuery reads the output format and aggregation options from the
// query string, falling back to the server defaults.
func (s *Server) parseQuery(r *http.Request) (render.Format, authors.Options, error) {
	q := r.URL.Query()
	opts := s.cfg.Defaults

	format := s.cfg.Format
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			return "", opts, err
		}
		format = f
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"hide_authors", &opts.HideAuthors},
		{"hide_emails", &opts.HideEmails},
		{"hide_crates", &opts.HideCrates},
		{"ignore_self", &opts.IgnoreSelf},
		{"by_crate", &opts.ByCrate},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", opts, errs.New(errs.ErrCodeInvalidInput, "invalid value %q for %s: expected a boolean", v, f.name)
		}
		*f.dst = b
	}
	return format, opts, nil
}

// errorBody is the JSON error document.
type errorBody struct {
	Code      errs.Code `json:"code,omitempty"`
	Error     string    `json:"error"`
	Causes    []string  `json:"causes,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	chain := errs.Chain(err)
	body := errorBody{
		Code:      errs.GetCode(err),
		Error:     err.Error(),
		RequestID: RequestIDFromContext(r.Context()),
	}
	if len(chain) > 0 {
		body.Error = chain[0]
		body.Causes = chain[1:]
	}

	s.logger.Warn("Request failed", "status", status, "code", body.Code, "err", body.Error, "request_id", body.RequestID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
}
