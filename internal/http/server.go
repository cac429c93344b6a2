package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the router behind the middleware chain. A nil auth leaves
// requests unauthenticated, which only tests should rely on.
func NewServer(port string, logger *slog.Logger, svcs Services, auth *middleware.Auth) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      NewHandler(logger, svcs, auth),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// NewHandler builds request id -> recovery -> logging -> auth -> metrics -> router.
// Metrics sits directly on the mux so it can read the matched pattern.
func NewHandler(logger *slog.Logger, svcs Services, auth *middleware.Auth) http.Handler {
	var h http.Handler = middleware.Metrics(NewRouter(svcs))
	if auth != nil {
		h = auth.Middleware(h)
	}
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)
	return middleware.RequestID(h)
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
