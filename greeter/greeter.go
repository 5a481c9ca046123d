package greeter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// DefaultShutdownTimeout bounds graceful shutdown when
// Server.ShutdownTimeout is zero.
const DefaultShutdownTimeout = 5 * time.Second

// Greeting returns the body served on "/".
func Greeting(application string) string {
	return "Hello from " + application + "!"
}

// NewRouter routes "/" to the greeting and "/healthz" to
// a liveness probe. Other methods on known paths get 405.
func NewRouter(application string) *mux.Router {
	router := mux.NewRouter()

	router.Use(logRequests)

	body := Greeting(application)

	router.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, body)
	}).Methods(http.MethodGet, http.MethodHead)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, "ok\n")
	}).Methods(http.MethodGet)

	return router
}

// Server serves the greeting router.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Application names the service in the greeting.
	Application string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Run listens on Addr and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	const errCtx = "running greeter"

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const errCtx = "serving greeter"

	srv := &http.Server{
		Handler:           NewRouter(s.Application),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info(
		"serving",
		"application", s.Application,
		"addr", ln.Addr().String(),
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("%s: %w", errCtx, err)
	case <-ctx.Done():
	}

	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), timeout,
	)
	defer cancel()

	slog.Info("shutting down", "timeout", timeout.String())

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", errCtx, err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = io.WriteString(w, body) //nolint:errcheck // client went away
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Info(
			"request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).String(),
		)
	})
}
