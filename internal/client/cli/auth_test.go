package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbelyaev/coachbase/internal/client/api"
	"github.com/dbelyaev/coachbase/internal/client/session"
	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/logging"
	"github.com/dbelyaev/coachbase/internal/server/httpapi"
	"github.com/dbelyaev/coachbase/internal/server/repositories/users"
	"github.com/dbelyaev/coachbase/internal/server/services"
)

// newTestApp wires a CLI App to a real API server over httptest, backed by
// the in-memory repository. Commands exercised here go through the full
// client and server stack.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := services.NewUserService(users.NewInMemoryRepository())
	srv := httpapi.NewServer(":0", logger, svc, "test-secret", time.Hour, true)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	a := &App{
		reader: bufio.NewReader(strings.NewReader("")),
		out:    &out,
	}
	a.api = api.NewClient(ts.URL, 2*time.Second, a)
	a.session = session.NewSession(a.api, a, logger)
	return a, &out
}

// stubInputs replaces the interactive input seams. Text prompts are answered
// from texts in order; the password prompt always returns password.
func stubInputs(t *testing.T, texts []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			t.Fatalf("unexpected text prompt #%d", i+1)
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func TestRegisterSignsIn(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"alice@example.org", "Alice"}, []byte("secret123"))
	defer restore()

	require.NoError(t, a.Register(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "alice@example.org", a.status())
	assert.Contains(t, out.String(), "Welcome, alice@example.org")
}

func TestLoginAndWhoami(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"bob@example.org", "Bob"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	a.Logout(context.Background())
	restore()

	require.False(t, a.isLoggedIn())

	restore = stubInputs(t, []string{"bob@example.org"}, []byte("secret123"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.isLoggedIn())

	out.Reset()
	require.NoError(t, a.Whoami(context.Background()))
	assert.Contains(t, out.String(), "bob@example.org")
	assert.Contains(t, out.String(), "username: bob")
}

func TestLoginWrongPassword(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"carol@example.org", "Carol"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	a.Logout(context.Background())
	restore()

	restore = stubInputs(t, []string{"carol@example.org"}, []byte("wrong-password"))
	defer restore()

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Login failed")
}

func TestUpdateOwnProfile(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"dan@example.org", "Dan"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	restore()

	// name changes, email/username left empty, no new password
	restore = stubInputs(t, []string{"Daniel", "", ""}, nil)
	defer restore()

	out.Reset()
	require.NoError(t, a.Update(context.Background()))

	assert.Contains(t, out.String(), "Profile updated")
	require.NotNil(t, a.session.User())
	assert.Equal(t, "Daniel", a.session.User().Name)
}

func TestDeleteOwnAccount(t *testing.T) {
	a, _ := newTestApp(t)

	restore := stubInputs(t, []string{"eve@example.org", "Eve"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	restore()

	restore = stubInputs(t, []string{"yes"}, nil)
	require.NoError(t, a.Delete(context.Background()))
	restore()

	assert.False(t, a.isLoggedIn())

	// the account is gone: logging back in fails
	restore = stubInputs(t, []string{"eve@example.org"}, []byte("secret123"))
	defer restore()
	require.ErrorIs(t, a.Login(context.Background()), common.ErrUnauthorized)
}

func TestDeleteCancelled(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"frank@example.org", "Frank"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	restore()

	restore = stubInputs(t, []string{"no"}, nil)
	defer restore()

	require.NoError(t, a.Delete(context.Background()))
	assert.Contains(t, out.String(), "Cancelled")
	assert.True(t, a.isLoggedIn())
}

func TestListUsers(t *testing.T) {
	a, out := newTestApp(t)

	restore := stubInputs(t, []string{"gina@example.org", "Gina"}, []byte("secret123"))
	require.NoError(t, a.Register(context.Background()))
	restore()

	out.Reset()
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "gina")
}
