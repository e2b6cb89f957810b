// Package router maps navigation paths to named views and applies the
// authentication gate: protected views resolve to the login view whenever
// the session is unauthenticated.
package router

import "strings"

// Well-known paths used across the client.
const (
	PathLogin = "/login"
	PathHome  = "/"
	PathUsers = "/users"
)

// View names.
const (
	ViewLogin    = "login"
	ViewUsers    = "users"
	ViewUserEdit = "user-edit"
	ViewNotFound = "not-found"
)

// Route is one entry of the navigation table.
type Route struct {
	Name      string
	Pattern   string
	Protected bool
}

// Match is the result of resolving a path: the route plus any extracted
// pattern parameters (":id" segments).
type Match struct {
	Route  Route
	Params map[string]string
}

// Router holds the navigation table.
type Router struct {
	routes   []Route
	notFound Route
}

// New builds the client's navigation table.
func New() *Router {
	return &Router{
		routes: []Route{
			{Name: ViewLogin, Pattern: PathLogin},
			{Name: ViewUsers, Pattern: PathHome, Protected: true},
			{Name: ViewUsers, Pattern: PathUsers, Protected: true},
			{Name: ViewUserEdit, Pattern: "/users/:id/edit", Protected: true},
		},
		notFound: Route{Name: ViewNotFound, Pattern: "*"},
	}
}

// Resolve matches path against the table. Unknown paths resolve to the
// not-found route.
func (rt *Router) Resolve(path string) Match {
	for _, r := range rt.routes {
		if params, ok := matchPattern(r.Pattern, path); ok {
			return Match{Route: r, Params: params}
		}
	}
	return Match{Route: rt.notFound}
}

// Destination resolves path and applies the auth gate: a protected route
// redirects to the login view when the session is unauthenticated.
func (rt *Router) Destination(path string, authenticated bool) Match {
	m := rt.Resolve(path)
	if m.Route.Protected && !authenticated {
		return rt.Resolve(PathLogin)
	}
	return m
}

func matchPattern(pattern string, path string) (map[string]string, bool) {
	want := splitPath(pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
