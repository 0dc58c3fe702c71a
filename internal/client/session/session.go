// Package session keeps the client-side authentication state: the current
// user, the bearer token, and the loading flag, plus the route-protection
// rules that redirect around them.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/dbelyaev/coachbase/internal/client/api"
	"github.com/dbelyaev/coachbase/internal/logging"
	"github.com/dbelyaev/coachbase/internal/server/models"
)

// Backend is the slice of the API client the session needs. *api.Client
// satisfies it.
type Backend interface {
	Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.PublicUser, error)
}

// Session is the client auth state machine.
//
// Invariants:
//   - user and token are set and cleared together.
//   - loading is true only while a CheckAuth is in flight.
//   - a response from a CheckAuth started before the last Login, Register
//     or Logout is discarded: the generation counter moved underneath it.
type Session struct {
	id      string
	client  Backend
	nav     Navigator
	logger  logging.Logger
	current Route

	user       *models.PublicUser
	token      string
	loading    bool
	generation uint64
}

// NewSession returns a Session starting on the home route with no user.
// Call CheckAuth to resolve any previously adopted token.
func NewSession(client Backend, nav Navigator, logger logging.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		client:  client,
		nav:     nav,
		logger:  logger.With("session", id),
		current: RouteHome,
		loading: true,
	}
}

// ID returns the unique identifier of this session instance.
func (s *Session) ID() string { return s.id }

// Token implements api.TokenSource.
func (s *Session) Token() string { return s.token }

// User returns the signed-in user, or nil.
func (s *Session) User() *models.PublicUser { return s.user }

// Loading reports whether the initial auth check is still unresolved.
func (s *Session) Loading() bool { return s.loading }

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool { return s.user != nil }

// Current returns the route the client is on.
func (s *Session) Current() Route { return s.current }

// AdoptToken installs a previously persisted token without a user. The next
// CheckAuth resolves it to a user or clears it.
func (s *Session) AdoptToken(token string) {
	s.token = token
}

// Navigate moves to a route, enforcing its access class against the current
// auth state. A signed-out user is redirected to login from authenticated
// routes; a signed-in user is bounced to dashboard from anonymous ones.
func (s *Session) Navigate(route Route) {
	switch {
	case route.Access == AccessAuthenticated && !s.Authenticated():
		s.logger.Debug(context.Background(), "redirecting unauthenticated user to login", "route", route.Name)
		route = RouteLogin
	case route.Access == AccessAnonymous && s.Authenticated():
		s.logger.Debug(context.Background(), "redirecting authenticated user to dashboard", "route", route.Name)
		route = RouteDashboard
	}
	s.current = route
	s.nav.Navigate(route)
}

// CheckAuth resolves the current token to a user. It always ends with
// loading=false. On any failure the user and token are cleared, and if the
// current route requires authentication the session navigates to login.
func (s *Session) CheckAuth(ctx context.Context) {
	gen := s.generation
	s.loading = true

	if s.token == "" {
		s.loading = false
		s.clear()
		if s.current.Access == AccessAuthenticated {
			s.Navigate(RouteLogin)
		}
		return
	}

	user, err := s.client.Me(ctx)

	if gen != s.generation {
		// Login, Register or Logout happened while the check was in
		// flight. Its result is stale; the newer state wins.
		s.logger.Debug(ctx, "discarding stale auth check result")
		return
	}

	s.loading = false
	if err != nil {
		s.logger.Info(ctx, "auth check failed, signing out", "error", err)
		s.clear()
		if s.current.Access == AccessAuthenticated {
			s.Navigate(RouteLogin)
		}
		return
	}

	s.user = user
}

// Login authenticates, adopts the returned token and user, and moves to the
// dashboard. The error is logged and returned for the frontend to display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Info(ctx, "login failed", "error", err)
		return err
	}
	s.adopt(resp)
	s.CheckAuth(ctx)
	s.Navigate(RouteDashboard)
	return nil
}

// Register creates an account and signs in with the issued token.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	resp, err := s.client.Register(ctx, email, password, name)
	if err != nil {
		s.logger.Info(ctx, "registration failed", "error", err)
		return err
	}
	s.adopt(resp)
	s.CheckAuth(ctx)
	s.Navigate(RouteDashboard)
	return nil
}

// Logout clears the session and moves to login. The server call is best
// effort: the token lives client-side, so a failed request still signs the
// user out locally.
func (s *Session) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn(ctx, "logout request failed", "error", err)
	}
	s.generation++
	s.clear()
	s.loading = false
	s.Navigate(RouteLogin)
}

func (s *Session) adopt(resp *api.AuthResponse) {
	s.generation++
	s.token = resp.Token
	s.user = resp.User
	s.loading = false
}

func (s *Session) clear() {
	s.user = nil
	s.token = ""
}
