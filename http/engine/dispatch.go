package engine

import (
	"fmt"
	"net/http"

	"github.com/slopjs/slop"
	"github.com/slopjs/slop/logger"
)

type phase int

const (
	phaseMiddleware phase = iota
	phaseRoute
	phaseError
	phaseDone
)

// Dispatch runs one request through the middleware chain, the first matching
// route's handler chain, and, on failure, the registered error handlers.
//
// Dispatch always returns a well-formed *Response. The error return is
// non-nil only when the dispatch failed in a way no error handler claimed:
// a handler error no error handler answered, a panic inside a handler, or a
// descriptor the engine could not parse. In every such case the returned
// Response has already been forced to a generic error status, so adapters
// serialize it as-is and may log the error.
func (e *Engine) Dispatch(in Incoming) (*Response, error) {
	res := NewResponse()

	req, err := newRequest(in)
	if err != nil {
		res.reset(http.StatusBadRequest, "Bad Request")
		return res, err
	}

	d := &dispatch{eng: e, req: req, res: res}

	err = d.run()
	if err != nil {
		res.reset(http.StatusInternalServerError, "Internal Server Error")
		e.log.Error("dispatch failed", &logger.LogContext{
			Error: err,
			Data:  map[string]any{"method": req.Method.String(), "path": req.Path},
		})
		return res, fmt.Errorf("%w: %s %s: %s", slop.ErrUnhandled, req.Method, req.Path, err)
	}

	return res, nil
}

// A dispatch tracks one request's walk across the engine's chains. Cursors
// only ever advance, so no step runs twice even when continuations misbehave.
type dispatch struct {
	eng *Engine
	req *Request
	res *Response

	phase phase
	mwIdx int
	chain []HandlerFunc
	hIdx  int

	// unhandled is set when the error phase exhausts every handler
	// without a response.
	unhandled error
}

func (d *dispatch) run() (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()

	d.proceed(nil)
	return d.unhandled
}

// proceed advances the dispatch by one step. It is re-entered by the
// continuations handed to handlers, so the remaining steps of a chain run
// inside a handler's next(nil) call and unwind back through it.
func (d *dispatch) proceed(err error) {
	if err != nil {
		d.enterErrorPhase(err)
		return
	}

	// First handler to answer wins; a set body ends the phase walk.
	if d.res.Written() {
		return
	}

	switch d.phase {
	case phaseMiddleware:
		for d.mwIdx < len(d.eng.middleware) {
			m := d.eng.middleware[d.mwIdx]
			d.mwIdx++
			if !prefixMatches(m.prefix, d.req.Path) {
				continue
			}

			d.invoke(m.handler)
			return
		}

		d.phase = phaseRoute
		d.enterRoutePhase()

	case phaseRoute:
		for d.hIdx < len(d.chain) {
			h := d.chain[d.hIdx]
			d.hIdx++
			d.invoke(h)
			return
		}
		// Chain exhausted without answering; the response goes back as-is.
	}
}

// invoke hands h a fresh single-shot continuation.
func (d *dispatch) invoke(h HandlerFunc) {
	var called bool
	h(d.req, d.res, func(err error) {
		if called {
			return
		}
		called = true
		d.proceed(err)
	})
}

// enterRoutePhase scans routes in registration order for the first whose
// method and pattern both match, binds its path parameters, and starts its
// handler chain. No match runs the engine's not-found handler instead.
func (d *dispatch) enterRoutePhase() {
	for _, rt := range d.eng.routes {
		if rt.method != d.req.Method {
			continue
		}

		params, ok := rt.pat.Match(d.req.Path)
		if !ok {
			continue
		}

		d.req.Params = params
		d.chain = rt.chain
		d.proceed(nil)
		return
	}

	d.phase = phaseDone
	d.invoke(d.eng.notFound)
}

// enterErrorPhase scans error handlers in registration order, prefix-filtered,
// each invoked with a no-op continuation. The first to set a response body
// ends the scan; if none does the error is unhandled and the whole dispatch
// fails. The normal middleware/route chain never resumes afterwards.
func (d *dispatch) enterErrorPhase(err error) {
	if d.phase == phaseError {
		// An error handler itself errored; nothing left to consult.
		d.unhandled = err
		return
	}
	d.phase = phaseError

	for _, eh := range d.eng.errorHandlers {
		if !prefixMatches(eh.prefix, d.req.Path) {
			continue
		}

		eh.handler(err, d.req, d.res, func(error) {})
		if d.res.Written() {
			return
		}
	}

	d.unhandled = err
}
