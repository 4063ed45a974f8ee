// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tigerwill90/thrust/internal/slogpretty"
)

// App is the top-level registry of routes and prefix middleware. An App goes through two phases: during
// registration, routes and middleware are added with [App.Handle] (or its method shortcuts) and
// [App.UseMiddleware]; once sealed, explicitly with [App.Seal] or implicitly by the first [App.Match],
// the route table is immutable and safe for concurrent use by multiple goroutine.
type App struct {
	tree                   *Tree
	logger                 *slog.Logger
	pool                   sync.Pool
	mws                    []prefixMiddleware
	parser                 Parser
	seal                   sync.Once
	mu                     sync.Mutex
	sealed                 atomic.Bool
	handleMethodNotAllowed bool
}

var _ http.Handler = (*App)(nil)

// New returns a ready to use App.
func New(opts ...Option) (*App, error) {
	app := new(App)
	app.logger = slog.New(slogpretty.DefaultHandler)
	app.pool.New = func() any {
		return new(Context)
	}

	for _, opt := range opts {
		if err := opt.apply(app); err != nil {
			return nil, err
		}
	}

	app.tree = NewTree(app.parser)
	return app, nil
}

// MustNew is a convenience wrapper for [New] and panics on error.
func MustNew(opts ...Option) *App {
	app, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return app
}

// Handle registers a new route for the given method and pattern. The last middleware is the terminal handler
// of the route. On success, it returns the newly registered [Route]. If an error occurs, it returns one of the
// following:
//   - [ErrInvalidRoute]: If the method is empty, the chain is empty or contains a nil middleware, or the
//     pattern cannot be parsed (see [Parser.Parse]).
//   - [ErrConflictingParamNames]: If a param is registered under another name at the same position.
//   - [ErrRouteExist]: If the route is already registered for this method.
//   - [ErrSealed]: If the App is already sealed.
func (app *App) Handle(method, pattern string, mws ...MiddlewareFunc) (*Route, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: missing http method", ErrInvalidRoute)
	}
	if len(mws) == 0 {
		return nil, fmt.Errorf("%w: route %s has no handler", ErrInvalidRoute, pattern)
	}
	if slices.ContainsFunc(mws, func(mw MiddlewareFunc) bool { return mw == nil }) {
		return nil, fmt.Errorf("%w: route %s has a nil middleware", ErrInvalidRoute, pattern)
	}

	segments, err := app.parser.Parse(pattern)
	if err != nil {
		return nil, err
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.sealed.Load() {
		return nil, fmt.Errorf("%w: cannot register [%s] %s", ErrSealed, method, pattern)
	}

	route := newRoute(strings.ToUpper(method), pattern, segments, mws)
	if err := app.tree.Insert(route); err != nil {
		return nil, err
	}
	return route, nil
}

// MustHandle registers a new route for the given method and pattern. This function is a convenience
// wrapper for the [App.Handle] function and panics on error.
func (app *App) MustHandle(method, pattern string, mws ...MiddlewareFunc) *Route {
	route, err := app.Handle(method, pattern, mws...)
	if err != nil {
		panic(err)
	}
	return route
}

// Get registers a GET route and panics on error.
func (app *App) Get(pattern string, mws ...MiddlewareFunc) *Route {
	return app.MustHandle(http.MethodGet, pattern, mws...)
}

// Post registers a POST route and panics on error.
func (app *App) Post(pattern string, mws ...MiddlewareFunc) *Route {
	return app.MustHandle(http.MethodPost, pattern, mws...)
}

// Put registers a PUT route and panics on error.
func (app *App) Put(pattern string, mws ...MiddlewareFunc) *Route {
	return app.MustHandle(http.MethodPut, pattern, mws...)
}

// Patch registers a PATCH route and panics on error.
func (app *App) Patch(pattern string, mws ...MiddlewareFunc) *Route {
	return app.MustHandle(http.MethodPatch, pattern, mws...)
}

// Delete registers a DELETE route and panics on error.
func (app *App) Delete(pattern string, mws ...MiddlewareFunc) *Route {
	return app.MustHandle(http.MethodDelete, pattern, mws...)
}

// UseMiddleware attaches middleware to prefix for every method. Every route whose pattern descends from
// prefix (or equals it) inherits them, regardless of whether the route was registered before or after this
// call. Inherited middleware run before the route's own middleware; middleware of a shorter prefix run
// before those of a longer one, and middleware of the same prefix run in registration order. Params in the
// prefix match params of any name at the same position. It returns an error that Is [ErrInvalidRoute] if the
// prefix cannot be parsed or a middleware is nil, or [ErrSealed] if the App is sealed.
func (app *App) UseMiddleware(prefix string, mws ...MiddlewareFunc) error {
	if slices.ContainsFunc(mws, func(mw MiddlewareFunc) bool { return mw == nil }) {
		return fmt.Errorf("%w: prefix %s has a nil middleware", ErrInvalidRoute, prefix)
	}

	segments, err := app.parser.Parse(prefix)
	if err != nil {
		return err
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.sealed.Load() {
		return fmt.Errorf("%w: cannot attach middleware to %s", ErrSealed, prefix)
	}

	app.mws = append(app.mws, prefixMiddleware{prefix: prefix, segments: segments, chain: append(Chain(nil), mws...)})
	return nil
}

// Use attaches middleware to prefix and panics on error. See [App.UseMiddleware].
func (app *App) Use(prefix string, mws ...MiddlewareFunc) {
	if err := app.UseMiddleware(prefix, mws...); err != nil {
		panic(err)
	}
}

// Seal ends the registration phase: the chain of every route is compiled from the prefix middleware and the
// route table becomes read-only. Seal is idempotent and is called implicitly by the first [App.Match].
func (app *App) Seal() {
	app.seal.Do(func() {
		app.mu.Lock()
		defer app.mu.Unlock()

		// Shorter prefixes first, registration order among equal depths.
		mws := slices.Clone(app.mws)
		slices.SortStableFunc(mws, func(a, b prefixMiddleware) int {
			return len(a.segments) - len(b.segments)
		})

		app.tree.Walk(func(route *Route) bool {
			var inherited Chain
			for _, m := range mws {
				if m.covers(route.segments) {
					inherited = append(inherited, m.chain...)
				}
			}
			route.compile(inherited)
			return true
		})
		app.sealed.Store(true)
	})
}

// Sealed reports whether the registration phase is over.
func (app *App) Sealed() bool {
	return app.sealed.Load()
}

// Tree returns the search tree of the App. The tree must not be mutated once the App is sealed.
func (app *App) Tree() *Tree {
	return app.tree
}

// Match is the result of a route lookup.
type Match struct {
	route   *Route
	params  Params
	allowed []string
}

// Found reports whether a route matched.
func (m Match) Found() bool {
	return m.route != nil
}

// Route returns the matched route or nil.
func (m Match) Route() *Route {
	return m.route
}

// Params returns the params captured by the lookup.
func (m Match) Params() Params {
	return m.params
}

// Allowed returns the methods registered for the path when no route matched the method. It is only
// populated when [WithNoMethod] is enabled.
func (m Match) Allowed() []string {
	return m.allowed
}

// Match performs a pure lookup of the route for method and path. It seals the App if needed, performs no
// I/O and does not mutate anything.
func (app *App) Match(method, path string) Match {
	app.Seal()
	route, params, ok := app.tree.Lookup(method, path)
	if ok {
		return Match{route: route, params: params}
	}
	if app.handleMethodNotAllowed {
		return Match{allowed: app.tree.Methods(path)}
	}
	return Match{}
}

// Resolve runs the chain of the matched route for req and returns the resulting [Response]. If m did not find a
// route, it returns a 404 Not Found response (or a 405 Method Not Allowed if [WithNoMethod] is enabled and the
// path exists for other methods) without running any middleware. If a middleware fails, Resolve returns the
// error and no response.
func (app *App) Resolve(req *http.Request, m Match) (*Response, error) {
	if m.route == nil {
		if len(m.allowed) > 0 {
			return methodNotAllowed(m.allowed), nil
		}
		return NotFound(), nil
	}

	c := app.pool.Get().(*Context)
	c.reset(app, req, m.route, m.params)
	defer app.release(c)

	if err := m.route.Handle(c); err != nil {
		return nil, err
	}
	return c.Response(), nil
}

// ServeHTTP is the main entry point to serve a request. It matches the request against the route table,
// runs the chain and writes the response. A chain failure is logged and answered with a 500 Internal Server
// Error, unless the request was cancelled, in which case nothing is written.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	m := app.Match(r.Method, path)
	resp, err := app.Resolve(r, m)
	if err != nil {
		if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			app.logger.LogAttrs(r.Context(), slog.LevelDebug, "request cancelled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.String()),
			)
			return
		}
		app.logger.LogAttrs(r.Context(), slog.LevelError, "middleware failure",
			slog.String("method", r.Method),
			slog.String("path", r.URL.String()),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_ = resp.WriteTo(w)
}

func (app *App) release(c *Context) {
	c.req = nil
	c.route = nil
	c.params = nil
	c.query = nil
	app.pool.Put(c)
}

func methodNotAllowed(allowed []string) *Response {
	return &Response{
		Status: CustomStatus(http.StatusMethodNotAllowed, ""),
		HeaderRaw: formatHeader(http.Header{
			HeaderAllow:       {strings.Join(allowed, ", ")},
			HeaderContentType: {MIMETextPlainCharsetUTF8},
		}),
		Body: []byte(http.StatusText(http.StatusMethodNotAllowed)),
	}
}
