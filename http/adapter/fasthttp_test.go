package adapter_test

import (
	"net/http"
	"testing"

	"github.com/slopjs/slop/http/adapter"
	"github.com/slopjs/slop/http/engine"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestFastHTTPRoundTrip(t *testing.T) {
	// Arrange
	eng := newEngine()
	eng.Get("/users/:id", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.JSON(http.StatusOK, map[string]string{"id": req.Params["id"]})
	})

	handler := adapter.NewFastHTTP(eng, adapter.WithFastHTTPLogger(quietLogger()))

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/users/42")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)

	// Act
	handler(&ctx)

	// Assert
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	require.JSONEq(t, `{"id":"42"}`, string(ctx.Response.Body()))
}

func TestFastHTTPPostBody(t *testing.T) {
	// Arrange
	eng := newEngine()
	eng.Post("/echo", func(req *engine.Request, res *engine.Response, next engine.Next) {
		text, err := req.Text()
		if err != nil {
			next(err)
			return
		}
		res.Text(http.StatusCreated, text)
	})

	handler := adapter.NewFastHTTP(eng, adapter.WithFastHTTPLogger(quietLogger()))

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI("/echo")
	req.SetBodyString("hello")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)

	// Act
	handler(&ctx)

	// Assert
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	require.Equal(t, "hello", string(ctx.Response.Body()))
}

func TestFastHTTPNotFound(t *testing.T) {
	// Arrange
	handler := adapter.NewFastHTTP(newEngine(), adapter.WithFastHTTPLogger(quietLogger()))

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/nothing")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)

	// Act
	handler(&ctx)

	// Assert
	require.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
