package middleware

import (
	"github.com/google/uuid"
	"github.com/slopjs/slop/http/engine"
)

// HeaderRequestID is the header RequestID records its identifier under,
// on both the request (for downstream handlers) and the response.
const HeaderRequestID = "X-Request-Id"

// RequestID tags each request with a fresh uuid, keeping one already supplied
// by a trusted upstream proxy.
func RequestID() engine.HandlerFunc {
	return func(req *engine.Request, res *engine.Response, next engine.Next) {
		id := req.Header[HeaderRequestID]
		if id == "" {
			id = uuid.NewString()
			req.Header[HeaderRequestID] = id
		}

		res.SetHeader(HeaderRequestID, id)
		next(nil)
	}
}
