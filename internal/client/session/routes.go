package session

// AccessClass states who may be on a route. Every route declares its class
// explicitly; there is no path-prefix guessing.
type AccessClass int

const (
	// AccessPublic routes are visible to everyone.
	AccessPublic AccessClass = iota
	// AccessAuthenticated routes require a signed-in user.
	AccessAuthenticated
	// AccessAnonymous routes are for signed-out users only (login, register).
	AccessAnonymous
)

// Route is a named client-side destination.
type Route struct {
	Name   string
	Path   string
	Access AccessClass
}

// Built-in routes. The CLI maps these to its screens; a different frontend
// would map them to URLs.
var (
	RouteHome      = Route{Name: "home", Path: "/", Access: AccessPublic}
	RouteLogin     = Route{Name: "login", Path: "/login", Access: AccessAnonymous}
	RouteRegister  = Route{Name: "register", Path: "/register", Access: AccessAnonymous}
	RouteDashboard = Route{Name: "dashboard", Path: "/dashboard", Access: AccessAuthenticated}
	RouteUsers     = Route{Name: "users", Path: "/users", Access: AccessAuthenticated}
)

// Navigator moves the frontend between routes. The session calls it for
// redirects; the frontend implements it.
type Navigator interface {
	Navigate(route Route)
}
