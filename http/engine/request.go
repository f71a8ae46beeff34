package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/slopjs/slop"
	"github.com/slopjs/slop/http/pattern"
)

// An Incoming is the transport-neutral request descriptor an adapter hands
// the engine. Adapters own the socket and the parsing of the native request;
// the engine owns everything after.
type Incoming struct {
	Method string
	URL    string
	Header map[string]string

	// Body is read lazily, the first time a handler asks for it.
	Body io.Reader
}

// A Request is the engine's view of one inbound HTTP request.
// The dispatcher builds a fresh Request per dispatch; it is owned by exactly
// one in-flight dispatch and must not be shared across them.
type Request struct {
	Method slop.Method
	RawURL string
	Path   string
	Header map[string]string

	// Params holds path parameters; populated once a route match succeeds.
	Params pattern.Params

	// Query holds the first value of each query parameter.
	Query map[string]string

	values url.Values
	reader io.Reader
	body   []byte
	read   bool
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func newRequest(in Incoming) (*Request, error) {
	m, err := slop.ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(in.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse url %q: %s", slop.ErrNotValid, in.URL, err)
	}

	header := in.Header
	if header == nil {
		header = make(map[string]string)
	}

	values := u.Query()
	query := make(map[string]string, len(values))
	for k := range values {
		query[k] = values.Get(k)
	}

	return &Request{
		Method: m,
		RawURL: in.URL,
		Path:   u.Path,
		Header: header,
		Query:  query,
		values: values,
		reader: in.Body,
	}, nil
}

// Bytes drains the request body, caching it so repeated calls see the same
// payload.
func (r *Request) Bytes() ([]byte, error) {
	if r.read {
		return r.body, nil
	}

	r.read = true
	if r.reader == nil {
		return nil, nil
	}

	b, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot read request body: %w", err)
	}

	r.body = b
	return b, nil
}

// Text returns the request body as a string.
func (r *Request) Text() (string, error) {
	b, err := r.Bytes()
	return string(b), err
}

// Body returns the request payload as a tagged [Body]:
// [BodyNone] when empty, [BodyJSON] when the Content-Type says JSON,
// [BodyText] otherwise.
func (r *Request) Body() (Body, error) {
	b, err := r.Bytes()
	if err != nil {
		return Body{}, err
	}

	if len(b) == 0 {
		return Body{}, nil
	}

	if r.Header["Content-Type"] == "application/json" {
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return Body{}, fmt.Errorf("%w: malformed json body: %s", slop.ErrNotValid, err)
		}
		return JSONBody(v), nil
	}

	return TextBody(string(b)), nil
}

// DecodeJSON decodes the JSON request body into a pointer to a struct.
func (r *Request) DecodeJSON(structPtr any) error {
	b, err := r.Bytes()
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, structPtr); err != nil {
		return fmt.Errorf("%w: failed decoding request body: %s", slop.ErrNotValid, err)
	}

	return nil
}

// DecodeQuery decodes the request's query parameters into a pointer to a
// struct, matching fields by their "schema" struct tags.
func (r *Request) DecodeQuery(structPtr any) error {
	if err := queryDecoder.Decode(structPtr, r.values); err != nil {
		return fmt.Errorf("%w: failed decoding query params: %s", slop.ErrNotValid, err)
	}

	return nil
}
