package engine_test

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"

	"github.com/slopjs/slop"
	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
	"github.com/stretchr/testify/require"
)

func newEngine() *engine.Engine {
	quiet := logger.New(
		logger.WithLogger(log.New(io.Discard, "", 0)),
		logger.WithLevel(logger.LogLevelFatal),
	)
	return engine.New(engine.WithLogger(quiet))
}

func get(path string) engine.Incoming {
	return engine.Incoming{Method: "GET", URL: path}
}

func TestDispatchRegistrationOrderPrecedence(t *testing.T) {
	// Arrange: the parameterized route is registered first, so it wins
	// even against a request the literal route would match exactly.
	eng := newEngine()
	eng.Get("/users/:id", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusOK, "param "+req.Params["id"])
	})
	eng.Get("/users/me", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusOK, "literal")
	})

	// Act
	res, err := eng.Dispatch(get("/users/me"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, "param me", res.Body().Text())
}

func TestDispatchFirstResponderWins(t *testing.T) {
	// Arrange
	var secondRan, routeRan bool
	eng := newEngine()
	eng.Use(func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusTeapot, "answered early")
		next(nil)
	})
	eng.Use(func(req *engine.Request, res *engine.Response, next engine.Next) {
		secondRan = true
		next(nil)
	})
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		routeRan = true
	})

	// Act
	res, err := eng.Dispatch(get("/"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, res.Status())
	require.Equal(t, "answered early", res.Body().Text())
	require.False(t, secondRan)
	require.False(t, routeRan)
}

func TestDispatchMiddlewarePrefixFilter(t *testing.T) {
	// Arrange
	var hits []string
	record := func(name string) engine.HandlerFunc {
		return func(req *engine.Request, res *engine.Response, next engine.Next) {
			hits = append(hits, name)
			next(nil)
		}
	}
	eng := newEngine()
	eng.Use(record("global"))
	eng.UseAt("/api", record("api"))
	eng.UseAt("/admin", record("admin"))
	eng.Get("/api/users", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusOK, "ok")
	})

	// Act
	_, err := eng.Dispatch(get("/api/users"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"global", "api"}, hits)
}

func TestDispatchMiddlewareStopsWithoutNext(t *testing.T) {
	// Arrange: a middleware that neither writes nor continues ends the dispatch.
	var routeRan bool
	eng := newEngine()
	eng.Use(func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.SetStatus(http.StatusAccepted)
	})
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		routeRan = true
	})

	// Act
	res, err := eng.Dispatch(get("/"))

	// Assert
	require.NoError(t, err)
	require.False(t, routeRan)
	require.Equal(t, http.StatusAccepted, res.Status())
	require.True(t, res.Body().IsEmpty())
}

func TestDispatchRouteHandlerChain(t *testing.T) {
	// Arrange
	var order []string
	eng := newEngine()
	eng.Get("/",
		func(req *engine.Request, res *engine.Response, next engine.Next) {
			order = append(order, "first")
			next(nil)
		},
		func(req *engine.Request, res *engine.Response, next engine.Next) {
			order = append(order, "second")
			res.Text(http.StatusOK, "done")
			next(nil)
		},
		func(req *engine.Request, res *engine.Response, next engine.Next) {
			order = append(order, "third")
		},
	)

	// Act
	res, err := eng.Dispatch(get("/"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, order)
	require.Equal(t, "done", res.Body().Text())
}

func TestDispatchContinuationSingleShot(t *testing.T) {
	// Arrange
	var downstream int
	eng := newEngine()
	eng.Use(func(req *engine.Request, res *engine.Response, next engine.Next) {
		next(nil)
		next(nil) // must not re-run anything
	})
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		downstream++
		res.Text(http.StatusOK, "once")
	})

	// Act
	_, err := eng.Dispatch(get("/"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, downstream)
}

func TestDispatchMiddlewareObservesFinalResponse(t *testing.T) {
	// Arrange: decoration through the continuation, not response patching.
	var observed int
	eng := newEngine()
	eng.Use(func(req *engine.Request, res *engine.Response, next engine.Next) {
		next(nil)
		observed = res.Status()
	})
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusCreated, "made")
	})

	// Act
	_, err := eng.Dispatch(get("/"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, observed)
}

func TestDispatchErrorPropagation(t *testing.T) {
	// Arrange
	var order []string
	var afterRan bool
	boom := errors.New("boom")

	eng := newEngine()
	eng.Get("/api/users",
		func(req *engine.Request, res *engine.Response, next engine.Next) {
			next(boom)
		},
		func(req *engine.Request, res *engine.Response, next engine.Next) {
			afterRan = true
		},
	)
	eng.UseErrorAt("/admin", func(err error, req *engine.Request, res *engine.Response, next engine.Next) {
		order = append(order, "admin")
	})
	eng.UseErrorAt("/api", func(err error, req *engine.Request, res *engine.Response, next engine.Next) {
		order = append(order, "observer")
		// observes but does not answer
	})
	eng.UseError(func(err error, req *engine.Request, res *engine.Response, next engine.Next) {
		order = append(order, "responder")
		require.ErrorIs(t, err, boom)
		res.Text(http.StatusBadGateway, "claimed: "+err.Error())
	})
	eng.UseError(func(err error, req *engine.Request, res *engine.Response, next engine.Next) {
		order = append(order, "late")
	})

	// Act
	res, err := eng.Dispatch(get("/api/users"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"observer", "responder"}, order)
	require.False(t, afterRan)
	require.Equal(t, http.StatusBadGateway, res.Status())
	require.Equal(t, "claimed: boom", res.Body().Text())
}

func TestDispatchUnhandledError(t *testing.T) {
	// Arrange
	eng := newEngine()
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		next(errors.New("nobody home"))
	})

	// Act
	res, err := eng.Dispatch(get("/"))

	// Assert
	require.ErrorIs(t, err, slop.ErrUnhandled)
	require.Equal(t, http.StatusInternalServerError, res.Status())
	require.Equal(t, "Internal Server Error", res.Body().Text())
}

func TestDispatchRecoversPanic(t *testing.T) {
	// Arrange
	eng := newEngine()
	eng.Get("/", func(req *engine.Request, res *engine.Response, next engine.Next) {
		panic("handler went sideways")
	})

	// Act
	res, err := eng.Dispatch(get("/"))

	// Assert
	require.ErrorIs(t, err, slop.ErrUnhandled)
	require.ErrorContains(t, err, "handler went sideways")
	require.Equal(t, http.StatusInternalServerError, res.Status())
}

func TestDispatchNotFound(t *testing.T) {
	// Arrange
	eng := newEngine()
	eng.Get("/present", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(http.StatusOK, "here")
	})

	// Act
	res, err := eng.Dispatch(get("/absent"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.Status())

	// Arrange: wrong method on an existing path is also not found.
	res, err = eng.Dispatch(engine.Incoming{Method: "POST", URL: "/present"})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.Status())

	// Arrange: custom not-found handler.
	eng.HandleNotFound(func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.JSON(http.StatusNotFound, map[string]string{"missing": req.Path})
	})

	// Act
	res, err = eng.Dispatch(get("/absent"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, map[string]string{"missing": "/absent"}, res.Body().JSON())
}

func TestDispatchBadDescriptor(t *testing.T) {
	// Arrange
	eng := newEngine()

	// Act: TRACE is outside the route method enum.
	res, err := eng.Dispatch(engine.Incoming{Method: "TRACE", URL: "/"})

	// Assert
	require.ErrorIs(t, err, slop.ErrNotValid)
	require.Equal(t, http.StatusBadRequest, res.Status())
}

func TestDispatchEndToEnd(t *testing.T) {
	// Arrange
	type user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	eng := newEngine()
	eng.Get("/users/:id", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.JSON(http.StatusOK, user{ID: req.Params["id"], Name: "Pat"})
	})
	eng.Post("/users", func(req *engine.Request, res *engine.Response, next engine.Next) {
		var u user
		if err := req.DecodeJSON(&u); err != nil {
			next(err)
			return
		}
		res.JSON(http.StatusCreated, u)
	})

	// Act
	res, err := eng.Dispatch(get("/users/7"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status())
	require.Equal(t, user{ID: "7", Name: "Pat"}, res.Body().JSON())

	// Act
	res, err = eng.Dispatch(engine.Incoming{
		Method: "POST",
		URL:    "/users",
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   strings.NewReader(`{"id":"9","name":"Sam"}`),
	})

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status())
	require.Equal(t, user{ID: "9", Name: "Sam"}, res.Body().JSON())
}
