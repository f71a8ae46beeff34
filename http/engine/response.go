package engine

import "net/http"

// A Response is the mutable response model handlers build up during a
// dispatch. The first handler to set a non-empty body wins: once the body is
// written the Response freezes and later mutations are ignored.
type Response struct {
	status  int
	header  map[string]string
	body    Body
	written bool
}

// NewResponse constructs a Response with status 200, no headers, and no body.
func NewResponse() *Response {
	return &Response{
		status: http.StatusOK,
		header: make(map[string]string),
	}
}

func (r *Response) Status() int { return r.status }

// SetStatus records the status code to respond with.
// Ignored once the body has been written.
func (r *Response) SetStatus(code int) {
	if r.written {
		return
	}

	r.status = code
}

// SetHeader records a response header. Ignored once the body has been written.
func (r *Response) SetHeader(key, value string) {
	if r.written {
		return
	}

	r.header[key] = value
}

// Header returns the value recorded for key, "" when unset.
func (r *Response) Header(key string) string { return r.header[key] }

// Headers returns the full header mapping. Callers must not mutate it after
// the dispatch completes.
func (r *Response) Headers() map[string]string { return r.header }

// Body returns the response payload set so far.
func (r *Response) Body() Body { return r.body }

// Written reports whether a non-empty body has been set.
func (r *Response) Written() bool { return r.written }

// Text responds with a plain-text body.
func (r *Response) Text(code int, text string) {
	r.write(code, TextBody(text))
}

// JSON responds with a JSON body; the value is serialized by the adapter when
// the response leaves the engine.
func (r *Response) JSON(code int, v any) {
	r.write(code, JSONBody(v))
}

// Bytes responds with a raw byte body under the given content type.
func (r *Response) Bytes(code int, contentType string, b []byte) {
	if contentType != "" {
		r.SetHeader("Content-Type", contentType)
	}

	r.write(code, BytesBody(b))
}

func (r *Response) write(code int, body Body) {
	if r.written || body.IsEmpty() {
		return
	}

	r.status = code
	r.body = body
	r.written = true
}

// reset discards everything recorded so far and replaces it with a generic
// internal-error response. The dispatcher calls it when an error escapes the
// whole chain.
func (r *Response) reset(code int, text string) {
	r.status = code
	r.header = map[string]string{}
	r.body = TextBody(text)
	r.written = true
}
