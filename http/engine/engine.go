package engine

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/slopjs/slop"
	"github.com/slopjs/slop/http/pattern"
	"github.com/slopjs/slop/logger"
)

// Global is the path-prefix filter matching every request path.
const Global = "*"

// A HandlerFunc handles one step of a dispatch. It may answer the request by
// writing to res, or advance the chain by calling next; calling next with an
// error switches the dispatch to its error phase.
type HandlerFunc func(req *Request, res *Response, next Next)

// An ErrorHandlerFunc handles a dispatch that entered its error phase.
type ErrorHandlerFunc func(err error, req *Request, res *Response, next Next)

// Next is the continuation a handler invokes to advance to the next step in
// the chain. The remaining steps run inside the call, so code after next(nil)
// observes the final state of the response. Invoking the same continuation
// twice is a no-op.
type Next func(err error)

type route struct {
	method slop.Method
	pat    pattern.Pattern
	chain  []HandlerFunc
}

type middlewareEntry struct {
	prefix  string
	handler HandlerFunc
}

type errorEntry struct {
	prefix  string
	handler ErrorHandlerFunc
}

// An Engine holds ordered collections of routes, middleware, and error
// handlers and dispatches requests across them.
//
// Registration is append-only and must finish before the first dispatch;
// after that the Engine is read-only and safe for any number of concurrent
// dispatches.
type Engine struct {
	routes        []route
	middleware    []middlewareEntry
	errorHandlers []errorEntry
	notFound      HandlerFunc
	log           logger.Logger
}

// An OptFn mutates the provided *Engine in some way when constructing a new one.
type OptFn func(*Engine)

// WithLogger sets the logger dispatch failures are reported through.
func WithLogger(l logger.Logger) OptFn {
	return func(e *Engine) {
		e.log = l
	}
}

// New constructs an *Engine using the OptFns passed in.
func New(opts ...OptFn) *Engine {
	e := &Engine{
		notFound: func(req *Request, res *Response, next Next) {
			res.Text(http.StatusNotFound, "Not Found")
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.New()
	}

	return e
}

// Handle registers the handler chain for requests matching method and path.
// Precedence between overlapping paths is pure registration order: the first
// route registered that matches a request wins, so register literal routes
// before parameterized ones that overlap them.
//
// Handle panics on an invalid method, an invalid path template, or an empty
// chain; registration runs at setup time and a bad route is a programming
// error.
func (e *Engine) Handle(method slop.Method, path string, chain ...HandlerFunc) {
	if err := method.Valid(); err != nil {
		panic(fmt.Sprintf("engine: %s", err))
	}

	if len(chain) == 0 {
		panic(fmt.Sprintf("engine: no handlers registered for %s %s", method, path))
	}

	pat, err := pattern.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("engine: %s", err))
	}

	e.routes = append(e.routes, route{method: method, pat: pat, chain: chain})
}

// Get registers the handler chain for GET requests matching path.
func (e *Engine) Get(path string, chain ...HandlerFunc) {
	e.Handle(slop.MethodGet, path, chain...)
}

// Post registers the handler chain for POST requests matching path.
func (e *Engine) Post(path string, chain ...HandlerFunc) {
	e.Handle(slop.MethodPost, path, chain...)
}

// Put registers the handler chain for PUT requests matching path.
func (e *Engine) Put(path string, chain ...HandlerFunc) {
	e.Handle(slop.MethodPut, path, chain...)
}

// Delete registers the handler chain for DELETE requests matching path.
func (e *Engine) Delete(path string, chain ...HandlerFunc) {
	e.Handle(slop.MethodDelete, path, chain...)
}

// Patch registers the handler chain for PATCH requests matching path.
func (e *Engine) Patch(path string, chain ...HandlerFunc) {
	e.Handle(slop.MethodPatch, path, chain...)
}

// Use appends middleware invoked on every request, in registration order.
func (e *Engine) Use(handlers ...HandlerFunc) {
	e.UseAt(Global, handlers...)
}

// UseAt appends middleware invoked on requests whose path starts with prefix.
// The filter is a plain string prefix, not segment-aware: "/user" also
// matches "/users/5".
func (e *Engine) UseAt(prefix string, handlers ...HandlerFunc) {
	for _, h := range handlers {
		if h == nil {
			panic("engine: nil middleware passed to UseAt")
		}
		e.middleware = append(e.middleware, middlewareEntry{prefix: prefix, handler: h})
	}
}

// UseError appends error handlers consulted on every errored dispatch,
// in registration order.
func (e *Engine) UseError(handlers ...ErrorHandlerFunc) {
	e.UseErrorAt(Global, handlers...)
}

// UseErrorAt appends error handlers consulted when a dispatch whose path
// starts with prefix enters its error phase.
func (e *Engine) UseErrorAt(prefix string, handlers ...ErrorHandlerFunc) {
	for _, h := range handlers {
		if h == nil {
			panic("engine: nil error handler passed to UseErrorAt")
		}
		e.errorHandlers = append(e.errorHandlers, errorEntry{prefix: prefix, handler: h})
	}
}

// HandleNotFound sets the handler run when no registered route matches a
// request, replacing the default 404 response.
func (e *Engine) HandleNotFound(h HandlerFunc) {
	e.notFound = h
}

// Mount copies every route, middleware entry, and error-handler entry of
// child into e, rewriting their paths and prefix filters under prefix while
// preserving the child's internal order.
//
// The copy is structural: routes registered on child after Mount returns do
// not appear in e, and e's registrations never leak back into child.
func (e *Engine) Mount(prefix string, child *Engine) {
	for _, rt := range child.routes {
		chain := make([]HandlerFunc, len(rt.chain))
		copy(chain, rt.chain)

		pat, err := pattern.Parse(joinPath(prefix, rt.pat.String()))
		if err != nil {
			panic(fmt.Sprintf("engine: %s", err))
		}

		e.routes = append(e.routes, route{method: rt.method, pat: pat, chain: chain})
	}

	for _, m := range child.middleware {
		e.middleware = append(e.middleware, middlewareEntry{
			prefix:  joinPrefix(prefix, m.prefix),
			handler: m.handler,
		})
	}

	for _, eh := range child.errorHandlers {
		e.errorHandlers = append(e.errorHandlers, errorEntry{
			prefix:  joinPrefix(prefix, eh.prefix),
			handler: eh.handler,
		})
	}
}

// joinPath prepends prefix to path without doubling "/" on either side.
func joinPath(prefix, path string) string {
	if prefix == "" || prefix == "/" {
		return path
	}

	if path == "/" {
		return prefix
	}

	return prefix + path
}

// joinPrefix rewrites a middleware prefix filter for a mount at prefix.
// The global filter narrows to the mount prefix itself.
func joinPrefix(prefix, filter string) string {
	if filter == Global {
		if prefix == "" || prefix == "/" {
			return Global
		}
		return prefix
	}

	return joinPath(prefix, filter)
}

func prefixMatches(prefix, path string) bool {
	return prefix == Global || strings.HasPrefix(path, prefix)
}
