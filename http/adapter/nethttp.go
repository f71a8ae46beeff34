package adapter

import (
	"net"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
)

// A NetHTTP serves an [engine.Engine] through the standard library's
// net/http server. It implements [http.Handler], so it plugs into
// [http.Server], [httptest.NewServer], or any mux that accepts handlers.
type NetHTTP struct {
	eng  *engine.Engine
	ls   logger.Logger
	wrap []func(http.Handler) http.Handler
}

type NetHTTPOptFn func(*NetHTTP)

// WithHandlerLogger overrides the logger the adapter uses for transport
// level failures.
func WithHandlerLogger(ls logger.Logger) NetHTTPOptFn {
	return func(a *NetHTTP) {
		a.ls = ls
	}
}

// WithProxyHeaders trusts X-Forwarded-For and friends from an upstream
// reverse proxy, rewriting RemoteAddr before dispatch. Only set this when
// the server is actually behind a proxy.
func WithProxyHeaders() NetHTTPOptFn {
	return func(a *NetHTTP) {
		a.wrap = append(a.wrap, handlers.ProxyHeaders)
	}
}

// WithCompression gzip-compresses responses when the client asks for it.
func WithCompression() NetHTTPOptFn {
	return func(a *NetHTTP) {
		a.wrap = append(a.wrap, handlers.CompressHandler)
	}
}

// NewNetHTTP binds eng to the net/http transport.
func NewNetHTTP(eng *engine.Engine, opts ...NetHTTPOptFn) http.Handler {
	a := &NetHTTP{eng: eng, ls: logger.New()}
	for _, opt := range opts {
		opt(a)
	}

	var h http.Handler = a
	for i := len(a.wrap) - 1; i >= 0; i-- {
		h = a.wrap[i](h)
	}
	return h
}

func (a *NetHTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hdr := make(map[string]string, len(r.Header))
	for k, vals := range r.Header {
		if len(vals) > 0 {
			hdr[k] = vals[0]
		}
	}
	if _, ok := hdr["X-Forwarded-For"]; !ok {
		if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			hdr["X-Forwarded-For"] = ip
		}
	}

	res, err := a.eng.Dispatch(engine.Incoming{
		Method: r.Method,
		URL:    r.URL.RequestURI(),
		Header: hdr,
		Body:   r.Body,
	})
	if err != nil {
		// The engine already forced res into a generic error shape;
		// serialize it as-is after noting the failure.
		a.ls.Error("dispatch failed", &logger.LogContext{
			Error: err,
			Data:  map[string]any{"method": r.Method, "uri": r.URL.RequestURI()},
		})
	}

	writeResponse(w, res, a.ls)
}

func writeResponse(w http.ResponseWriter, res *engine.Response, ls logger.Logger) {
	contentType, data, err := res.Body().Payload()
	if err != nil {
		ls.Error("cannot serialize response", &logger.LogContext{Error: err})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for k, v := range res.Headers() {
		w.Header().Set(k, v)
	}
	if contentType != "" && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(res.Status())
	if len(data) > 0 {
		_, _ = w.Write(data)
	}
}
