// Package cli implements the interactive terminal frontend for CoachBase.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dbelyaev/coachbase/internal/client/api"
	"github.com/dbelyaev/coachbase/internal/client/config"
	"github.com/dbelyaev/coachbase/internal/client/session"
	"github.com/dbelyaev/coachbase/internal/logging"
)

// App wires the API client and the session to the terminal. It is the
// session's Navigator: route changes become screen banners.
type App struct {
	config  *config.Config
	session *session.Session
	api     *api.Client
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the CLI application. The session and the API client refer
// to each other (the client asks the session for the token), so the App
// itself acts as the token source and delegates.
func NewApp(c *config.Config, logger logging.Logger) *App {
	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.api = api.NewClient(c.ServerURL, c.RequestTimeout, a)
	a.session = session.NewSession(a.api, a, logger)
	return a
}

// Token implements api.TokenSource by delegating to the session.
func (a *App) Token() string {
	if a.session == nil {
		return ""
	}
	return a.session.Token()
}

// Navigate implements session.Navigator.
func (a *App) Navigate(route session.Route) {
	fmt.Fprintf(a.out, "-- %s --\n", route.Name)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

// status renders the prompt segment showing who is signed in.
func (a *App) status() string {
	if u := a.session.User(); u != nil {
		return u.Email
	}
	return "guest"
}
