// Package route resolves the client's screen paths.
package route

import (
	"fmt"
	"net/url"
	"sync"
)

const (
	Root           = "/"
	Login          = "/login"
	Signup         = "/signup"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password"
	Dashboard      = "/dashboard"
	Home           = "/home"
)

var known = map[string]bool{
	Login:          true,
	Signup:         true,
	ForgotPassword: true,
	ResetPassword:  true,
	Dashboard:      true,
	Home:           true,
}

var redirects = map[string]string{
	Root: Login,
}

// Location is a resolved path plus its query parameters.
type Location struct {
	Path  string
	Query url.Values
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Resolve parses target and applies redirects. Unknown paths are an error.
func Resolve(target string) (Location, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Location{}, fmt.Errorf("invalid route %q: %w", target, err)
	}
	path := u.Path
	if path == "" {
		path = Root
	}
	if to, ok := redirects[path]; ok {
		path = to
	}
	if !known[path] {
		return Location{}, fmt.Errorf("unknown route %q", target)
	}
	return Location{Path: path, Query: u.Query()}, nil
}

// ResetPasswordLink is the route a reset token is delivered on.
func ResetPasswordLink(token string) string {
	return Location{Path: ResetPassword, Query: url.Values{"token": {token}}}.String()
}

type Listener func(Location)

// Router holds the current location.
type Router struct {
	mu        sync.RWMutex
	current   Location
	listeners []Listener
}

func NewRouter() *Router {
	return &Router{current: Location{Path: Login, Query: url.Values{}}}
}

// Navigate resolves target and makes it current.
func (r *Router) Navigate(target string) error {
	loc, err := Resolve(target)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = loc
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(loc)
	}
	return nil
}

func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Param returns a query parameter of the current location.
func (r *Router) Param(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.Query.Get(name)
}

func (r *Router) OnNavigate(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}
