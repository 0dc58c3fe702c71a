package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbelyaev/coachbase/internal/client/api"
	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/logging"
	"github.com/dbelyaev/coachbase/internal/server/models"
)

type fakeBackend struct {
	registerFunc func(ctx context.Context, email, password, name string) (*api.AuthResponse, error)
	loginFunc    func(ctx context.Context, email, password string) (*api.AuthResponse, error)
	logoutFunc   func(ctx context.Context) error
	meFunc       func(ctx context.Context) (*models.PublicUser, error)
}

func (f *fakeBackend) Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
	return f.registerFunc(ctx, email, password, name)
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return f.loginFunc(ctx, email, password)
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	if f.logoutFunc == nil {
		return nil
	}
	return f.logoutFunc(ctx)
}

func (f *fakeBackend) Me(ctx context.Context) (*models.PublicUser, error) {
	return f.meFunc(ctx)
}

type fakeNavigator struct {
	visited []Route
}

func (f *fakeNavigator) Navigate(route Route) {
	f.visited = append(f.visited, route)
}

func (f *fakeNavigator) last() (Route, bool) {
	if len(f.visited) == 0 {
		return Route{}, false
	}
	return f.visited[len(f.visited)-1], true
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestSession(backend *fakeBackend) (*Session, *fakeNavigator) {
	nav := &fakeNavigator{}
	return NewSession(backend, nav, testLogger()), nav
}

func TestNewSessionStartsLoading(t *testing.T) {
	s, _ := newTestSession(&fakeBackend{})

	assert.True(t, s.Loading())
	assert.False(t, s.Authenticated())
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, RouteHome, s.Current())
}

func TestCheckAuthWithoutToken(t *testing.T) {
	s, nav := newTestSession(&fakeBackend{})

	s.CheckAuth(context.Background())

	assert.False(t, s.Loading())
	assert.False(t, s.Authenticated())
	assert.Empty(t, nav.visited, "no redirect from a public route")
}

func TestCheckAuthResolvesUser(t *testing.T) {
	backend := &fakeBackend{
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return &models.PublicUser{ID: 1, Email: "ann@example.com"}, nil
		},
	}
	s, _ := newTestSession(backend)
	s.AdoptToken("stored-token")

	s.CheckAuth(context.Background())

	assert.False(t, s.Loading())
	require.True(t, s.Authenticated())
	assert.Equal(t, int64(1), s.User().ID)
	assert.Equal(t, "stored-token", s.Token())
}

func TestCheckAuthFailureClearsSession(t *testing.T) {
	backend := &fakeBackend{
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return nil, common.ErrTokenExpired
		},
	}
	s, _ := newTestSession(backend)
	s.AdoptToken("expired-token")

	s.CheckAuth(context.Background())

	assert.False(t, s.Loading())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestCheckAuthRedirectsFromProtectedRoute(t *testing.T) {
	backend := &fakeBackend{
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return nil, common.ErrInvalidToken
		},
	}
	s, nav := newTestSession(backend)
	s.AdoptToken("bad-token")
	s.current = RouteDashboard

	s.CheckAuth(context.Background())

	last, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, RouteLogin, last)
	assert.Equal(t, RouteLogin, s.Current())
}

func TestLogin(t *testing.T) {
	backend := &fakeBackend{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: "fresh-token",
				User:  &models.PublicUser{ID: 2, Email: email},
			}, nil
		},
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return &models.PublicUser{ID: 2, Email: "bob@example.com"}, nil
		},
	}
	s, nav := newTestSession(backend)

	require.NoError(t, s.Login(context.Background(), "bob@example.com", "secret123"))

	assert.Equal(t, "fresh-token", s.Token())
	require.True(t, s.Authenticated())
	assert.False(t, s.Loading())

	last, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, RouteDashboard, last)
}

func TestLoginFailureLeavesSessionSignedOut(t *testing.T) {
	backend := &fakeBackend{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			return nil, common.ErrUnauthorized
		},
	}
	s, nav := newTestSession(backend)

	err := s.Login(context.Background(), "bob@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, nav.visited)
}

func TestRegister(t *testing.T) {
	backend := &fakeBackend{
		registerFunc: func(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: "new-token",
				User:  &models.PublicUser{ID: 3, Email: email, Name: name},
			}, nil
		},
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return &models.PublicUser{ID: 3, Email: "carol@example.com", Name: "Carol"}, nil
		},
	}
	s, nav := newTestSession(backend)

	require.NoError(t, s.Register(context.Background(), "carol@example.com", "secret123", "Carol"))

	assert.True(t, s.Authenticated())
	assert.Equal(t, "Carol", s.User().Name)

	last, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, RouteDashboard, last)
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	backend := &fakeBackend{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			return &api.AuthResponse{Token: "tok", User: &models.PublicUser{ID: 4}}, nil
		},
		logoutFunc: func(ctx context.Context) error {
			return errors.New("server unreachable")
		},
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return &models.PublicUser{ID: 4}, nil
		},
	}
	s, nav := newTestSession(backend)
	require.NoError(t, s.Login(context.Background(), "dan@example.com", "secret123"))

	s.Logout(context.Background())

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())

	last, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, RouteLogin, last)
}

func TestStaleCheckAuthDiscarded(t *testing.T) {
	var s *Session
	backend := &fakeBackend{
		// Logout lands while the auth check is in flight. The check's
		// result must not resurrect the signed-out user.
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			s.Logout(ctx)
			return &models.PublicUser{ID: 5}, nil
		},
	}
	var nav *fakeNavigator
	s, nav = newTestSession(backend)
	s.AdoptToken("tok")

	s.CheckAuth(context.Background())

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())

	last, ok := nav.last()
	require.True(t, ok)
	assert.Equal(t, RouteLogin, last)
}

func TestNavigateRouteProtection(t *testing.T) {
	backend := &fakeBackend{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			return &api.AuthResponse{Token: "tok", User: &models.PublicUser{ID: 6}}, nil
		},
		meFunc: func(ctx context.Context) (*models.PublicUser, error) {
			return &models.PublicUser{ID: 6}, nil
		},
	}
	s, _ := newTestSession(backend)

	s.Navigate(RouteUsers)
	assert.Equal(t, RouteLogin, s.Current(), "signed out: protected route redirects to login")

	require.NoError(t, s.Login(context.Background(), "eve@example.com", "secret123"))

	s.Navigate(RouteLogin)
	assert.Equal(t, RouteDashboard, s.Current(), "signed in: anonymous route bounces to dashboard")

	s.Navigate(RouteUsers)
	assert.Equal(t, RouteUsers, s.Current())
}
