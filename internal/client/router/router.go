// Package router maps client view paths to routes and applies the
// session guards before a view is shown.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

const (
	HomePath  = "/"
	LoginPath = "/login"
	AdminPath = "/admin"
)

// Access is the guard level of a route.
type Access int

const (
	Public Access = iota
	Protected
	AdminOnly
)

type Route struct {
	Name    string
	Pattern string
	Access  Access
}

// Routes lists every view. Patterns use ":name" segments for parameters.
var Routes = []Route{
	{Name: "home", Pattern: "/", Access: Public},
	{Name: "books", Pattern: "/books", Access: Public},
	{Name: "book", Pattern: "/book/:id", Access: Public},
	{Name: "login", Pattern: "/login", Access: Public},
	{Name: "register", Pattern: "/register", Access: Public},
	{Name: "verify-email", Pattern: "/verify-email/:token", Access: Public},
	{Name: "cart", Pattern: "/cart", Access: Protected},
	{Name: "orders", Pattern: "/orders", Access: Protected},
	{Name: "profile", Pattern: "/profile", Access: Protected},
	{Name: "my-books", Pattern: "/my-books", Access: Protected},
	{Name: "wishlist", Pattern: "/wishlist", Access: Protected},
	{Name: "admin", Pattern: "/admin", Access: AdminOnly},
}

// SessionSource yields the current session, nil when anonymous.
type SessionSource interface {
	Session(ctx context.Context) (*models.Session, error)
}

// Decision is the outcome of resolving a path. Path is where the client
// ends up; Redirected is set when that differs from the requested view.
type Decision struct {
	Route      Route
	Path       string
	Params     map[string]string
	Redirected bool
}

// Match finds the route for path. Unknown paths fall through to home.
func Match(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, r := range Routes {
		if params, ok := match(split(r.Pattern), segs); ok {
			return r, params, true
		}
	}
	return Routes[0], nil, false
}

// Resolve applies the guards for path. A protected view without a session
// redirects to the login view; an admin view for anyone else redirects home.
func Resolve(ctx context.Context, src SessionSource, path string) (Decision, error) {
	route, params, ok := Match(path)
	if !ok {
		return Decision{Route: route, Path: HomePath, Redirected: true}, nil
	}

	redirect, err := Guard(ctx, src, route.Access)
	if err != nil {
		return Decision{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	if redirect != "" {
		to, _, _ := Match(redirect)
		return Decision{Route: to, Path: redirect, Redirected: true}, nil
	}

	return Decision{Route: route, Path: clean(path), Params: params}, nil
}

// Guard checks access against the current session and returns the path
// to redirect to, or "" when access is granted.
func Guard(ctx context.Context, src SessionSource, access Access) (string, error) {
	if access == Public {
		return "", nil
	}

	sess, err := src.Session(ctx)
	if err != nil {
		return "", err
	}
	if !sess.Valid() {
		return LoginPath, nil
	}
	if access == AdminOnly && !sess.User.IsAdmin() {
		return HomePath, nil
	}
	return "", nil
}

// AfterLogin is the landing view for a freshly authenticated user.
func AfterLogin(u models.User) string {
	if u.IsAdmin() {
		return AdminPath
	}
	return HomePath
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func clean(path string) string {
	return "/" + strings.Join(split(path), "/")
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
