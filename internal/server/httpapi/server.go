// Package httpapi exposes the JSON REST API: auth endpoints, bearer-protected
// user CRUD, and the health check.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dbelyaev/coachbase/internal/logging"
	"github.com/dbelyaev/coachbase/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	jwtSecret     []byte
	tokenValidity time.Duration
	development   bool
}

func NewServer(addr string, l logging.Logger, us *services.UserService, secretKey string, tokenValidity time.Duration, development bool) *Server {
	return &Server{
		address:       addr,
		logger:        l.With("module", "http_server"),
		users:         us,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		development:   development,
	}
}

// Run serves the API until ctx is cancelled, then drains connections with
// a shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
