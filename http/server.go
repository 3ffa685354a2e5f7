package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fwojciec/loclink"
	"github.com/google/uuid"
)

// ShutdownTimeout is how long outstanding requests get to finish before
// the server forces them closed.
const ShutdownTimeout = 5 * time.Second

// Server is the web front end of the checker. It owns routing, form
// handling, template rendering, and the presentation of errors; all
// checking goes through the injected services.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Bind address for the server to listen on, e.g. ":8080".
	Addr string

	// Services used by the route handlers.
	CheckService loclink.CheckService
	RunService   loclink.RunService
	Reports      loclink.ReportWriter
	Renderer     loclink.ReportRenderer

	// Locales offered as checkboxes in the multi-locale form.
	Locales []string

	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// NewServer creates a new Server with registered routes. Services must
// be wired before Open is called.
func NewServer() *Server {
	s := &Server{
		server:  &http.Server{},
		mux:     http.NewServeMux(),
		Locales: loclink.Locales,
		Logger:  slog.New(slog.DiscardHandler),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /check", s.handleCheck)
	s.mux.HandleFunc("POST /bulk", s.handleBulk)
	s.mux.HandleFunc("POST /multi", s.handleMulti)
	s.mux.HandleFunc("GET /runs", s.handleRunList)
	s.mux.HandleFunc("GET /runs/{id}", s.handleRunShow)
	s.mux.HandleFunc("GET /runs/{id}/pdf", s.handleRunPDF)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.server.Handler = s.recoverPanic(s.logRequests(s.mux))

	return s
}

// Open begins listening on Addr. It returns immediately; requests are
// served on a background goroutine until Close.
func (s *Server) Open() (err error) {
	if s.Addr == "" {
		return loclink.Errorf(loclink.EINVALID, "server address required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http serve", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the listening server. Useful in tests
// where the server binds an ephemeral port.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.MetricsHandler == nil {
		http.NotFound(w, r)
		return
	}
	s.MetricsHandler.ServeHTTP(w, r)
}

// errorStatusCodes maps domain error codes to HTTP status codes for
// non-report routes. Report routes degrade to an error panel instead.
var errorStatusCodes = map[string]int{
	loclink.ECONFLICT:    http.StatusConflict,
	loclink.EINVALID:     http.StatusBadRequest,
	loclink.ENOTFOUND:    http.StatusNotFound,
	loclink.EUNAVAILABLE: http.StatusServiceUnavailable,
	loclink.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for a domain error code.
func ErrorStatusCode(code string) int {
	if v, ok := errorStatusCodes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes an error response. Internal errors are logged with the
// underlying cause; the response body only ever carries the sanitized
// message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := loclink.ErrorCode(err)
	if code == loclink.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	http.Error(w, loclink.ErrorMessage(err), ErrorStatusCode(code))
}

// statusWriter captures the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request with a generated request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(begin),
			)
		}(time.Now())

		next.ServeHTTP(sw, r)
	})
}

// recoverPanic converts handler panics into 500 responses so one bad
// request cannot take the server down.
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				w.Header().Set("Connection", "close")
				s.Logger.Error("panic recovered",
					"err", v,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
