package middleware_test

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/http/middleware"
	"github.com/slopjs/slop/logger"
	"github.com/stretchr/testify/require"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopHandler), fmt.Sprintf("%p", actual))

	// Arrange
	b := new(bytes.Buffer)
	ls := logger.New(logger.WithLogger(log.New(b, "", 0)))

	eng := newEngine()
	eng.Use(middleware.LogRequest(ls))
	eng.Get("/users/:id", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.Text(418, "tea")
	})

	// Act
	_, err := eng.Dispatch(engine.Incoming{Method: "GET", URL: "/users/7?password=hunter2&sort=asc"})

	// Assert: the final status is observed and secrets are scrubbed.
	require.NoError(t, err)
	require.Contains(t, b.String(), "GET /users/7")
	require.Contains(t, b.String(), "418")
	require.Contains(t, b.String(), "xxxxxxx")
	require.NotContains(t, b.String(), "hunter2")
}
