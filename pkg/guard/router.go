package guard

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/eagl/console/pkg/session"
	"github.com/go-chi/chi/v5"
)

// MaxHops bounds how many redirects Resolve follows.
const MaxHops = 8

// ErrRedirectLoop is returned when resolution does not settle within MaxHops.
var ErrRedirectLoop = errors.New("guard: too many redirects")

// Route is one entry of the route table.
type Route struct {
	// Pattern uses chi syntax, e.g. /admin/tenants/{id}.
	Pattern string

	// Page names the screen shown for the route. Empty for aliases.
	Page string

	Kind Kind

	// Alias, when set, redirects unconditionally to another path.
	Alias string

	// BounceAuthenticated sends an authenticated session on to the path it
	// was originally heading for, or to the landing page.
	BounceAuthenticated bool
}

// Resolution is where a navigation ends up.
type Resolution struct {
	Route  Route
	Path   string
	Params map[string]string

	// From is the path a login redirect preserved, if any.
	From string

	// Hops lists every path visited, the requested one first and Path last.
	Hops []string
}

// Router resolves navigations against a route table.
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

// NewRouter builds a Router over routes. Unmatched paths fall through to the
// login entry point.
func NewRouter(routes []Route) (*Router, error) {
	r := &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]Route, len(routes)),
	}

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, rt := range routes {
		if !strings.HasPrefix(rt.Pattern, "/") {
			return nil, fmt.Errorf("guard: route pattern %q must start with /", rt.Pattern)
		}
		if _, dup := r.routes[rt.Pattern]; dup {
			return nil, fmt.Errorf("guard: duplicate route %q", rt.Pattern)
		}
		r.routes[rt.Pattern] = rt
		r.mux.Method(http.MethodGet, rt.Pattern, noop)
	}
	return r, nil
}

// NewConsoleRouter returns a Router over ConsoleRoutes.
func NewConsoleRouter() *Router {
	r, err := NewRouter(ConsoleRoutes())
	if err != nil {
		panic(err)
	}
	return r
}

// Match looks up the route for p without applying any guard.
func (r *Router) Match(p string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, cleanPath(p)) || len(rctx.RoutePatterns) == 0 {
		return Route{}, nil, false
	}

	rt, ok := r.routes[rctx.RoutePatterns[len(rctx.RoutePatterns)-1]]
	if !ok {
		return Route{}, nil, false
	}

	var params map[string]string
	if n := len(rctx.URLParams.Keys); n > 0 {
		params = make(map[string]string, n)
		for i, k := range rctx.URLParams.Keys {
			params[k] = rctx.URLParams.Values[i]
		}
	}
	return rt, params, true
}

// Resolve follows aliases and guard redirects for a navigation to p.
func (r *Router) Resolve(s session.Snapshot, p string) (Resolution, error) {
	return r.ResolveFrom(s, p, "")
}

// ResolveFrom is Resolve with a preserved origin path, as carried by a
// previous redirect to the login page.
func (r *Router) ResolveFrom(s session.Snapshot, p, from string) (Resolution, error) {
	cur := cleanPath(p)
	res := Resolution{From: from}

	for range MaxHops {
		res.Hops = append(res.Hops, cur)

		rt, params, ok := r.Match(cur)
		if !ok {
			// Catch-all. The unknown path is not worth returning to.
			cur = LoginPath
			continue
		}

		next, ok := r.step(s, rt, cur, &res)
		if !ok {
			res.Route = rt
			res.Path = cur
			res.Params = params
			return res, nil
		}
		cur = next
	}
	return res, fmt.Errorf("%w: %s", ErrRedirectLoop, strings.Join(res.Hops, " -> "))
}

// step returns the next path when rt redirects, or false when rt is shown.
func (r *Router) step(s session.Snapshot, rt Route, cur string, res *Resolution) (string, bool) {
	// 1. Aliases redirect regardless of session.
	if rt.Alias != "" {
		return rt.Alias, true
	}

	// 2. The login page sends an active session back where it came from.
	if rt.BounceAuthenticated && s.IsAuthenticated() {
		next := LandingPath
		if res.From != "" && cleanPath(res.From) != LoginPath {
			next = cleanPath(res.From)
		}
		res.From = ""
		return next, true
	}

	// 3. Guards.
	d := Check(s, rt.Kind, cur)
	if d.Allow {
		return "", false
	}
	if d.From != "" {
		res.From = d.From
	}
	return d.Redirect, true
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
