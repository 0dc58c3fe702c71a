package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 60 * time.Second

// Handler builds the route tree. Exposed so handler tests can mount the
// router on an httptest server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.requestLogger)

	r.Get("/healthz", handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handle(s.handleRegister))
			r.Post("/login", s.handle(s.handleLogin))
			r.Post("/logout", s.handle(s.handleLogout))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handle(s.handleListUsers))
			r.Get("/me", s.handle(s.handleMe))
			r.Get("/{id}", s.handle(s.handleGetUser))
			r.Put("/{id}", s.handle(s.handleUpdateUser))
			r.Delete("/{id}", s.handle(s.handleDeleteUser))
		})
	})

	return r
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
