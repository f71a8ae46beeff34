package middleware

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
)

// NoopHandler continues the chain and does nothing else.
func NoopHandler(req *engine.Request, res *engine.Response, next engine.Next) {
	next(nil)
}

// LogRequest logs the request's method, requested URL, final status, and
// duration using the enclosed implementation of logger.Logger. It wraps the
// continuation, so the line is emitted after everything downstream finished
// with the response.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// If ls is nil, NoopHandler returns and this middleware does nothing.
func LogRequest(ls logger.Logger) engine.HandlerFunc {
	if ls == nil {
		return NoopHandler
	}

	return func(req *engine.Request, res *engine.Response, next engine.Next) {
		start := time.Now()
		next(nil)

		uri := req.Path
		q, err := url.ParseQuery(rawQuery(req.RawURL))
		if err == nil && len(q) > 0 {
			if q.Get("password") != "" {
				q.Set("password", "xxxxxxx")
			}
			uri += "?" + q.Encode()
		}

		msg := fmt.Sprintf("%s %s %d", req.Method, uri, res.Status())
		ls.Info(msg, &logger.LogContext{Data: map[string]any{
			"status":      res.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}})
	}
}

func rawQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[i+1:]
	}
	return ""
}
