package adapter

import (
	"bytes"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
	"github.com/valyala/fasthttp"
)

// A FastHTTP serves an [engine.Engine] through valyala/fasthttp. Programs
// that already run a fasthttp server, or that want its allocation profile,
// pick this adapter instead of [NetHTTP].
type FastHTTP struct {
	eng *engine.Engine
	ls  logger.Logger
}

type FastHTTPOptFn func(*FastHTTP)

// WithFastHTTPLogger overrides the logger the adapter uses for transport
// level failures.
func WithFastHTTPLogger(ls logger.Logger) FastHTTPOptFn {
	return func(a *FastHTTP) {
		a.ls = ls
	}
}

// NewFastHTTP binds eng to the fasthttp transport.
func NewFastHTTP(eng *engine.Engine, opts ...FastHTTPOptFn) fasthttp.RequestHandler {
	a := &FastHTTP{eng: eng, ls: logger.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a.handle
}

func (a *FastHTTP) handle(ctx *fasthttp.RequestCtx) {
	hdr := make(map[string]string)
	ctx.Request.Header.VisitAll(func(k, v []byte) {
		key := string(k)
		if _, ok := hdr[key]; !ok {
			hdr[key] = string(v)
		}
	})
	if _, ok := hdr["X-Forwarded-For"]; !ok {
		hdr["X-Forwarded-For"] = ctx.RemoteIP().String()
	}

	uri := string(ctx.RequestURI())
	res, err := a.eng.Dispatch(engine.Incoming{
		Method: string(ctx.Method()),
		URL:    uri,
		Header: hdr,
		Body:   bytes.NewReader(ctx.PostBody()),
	})
	if err != nil {
		a.ls.Error("dispatch failed", &logger.LogContext{
			Error: err,
			Data:  map[string]any{"method": string(ctx.Method()), "uri": uri},
		})
	}

	contentType, data, err := res.Body().Payload()
	if err != nil {
		a.ls.Error("cannot serialize response", &logger.LogContext{Error: err})
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
		return
	}

	if contentType != "" {
		ctx.Response.Header.SetContentType(contentType)
	}
	// An explicit Content-Type on the response wins over the inferred one.
	for k, v := range res.Headers() {
		ctx.Response.Header.Set(k, v)
	}

	ctx.SetStatusCode(res.Status())
	if len(data) > 0 {
		_, _ = ctx.Write(data)
	}
}
