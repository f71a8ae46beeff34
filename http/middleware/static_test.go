package middleware_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/http/middleware"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	// Arrange
	tmp := t.TempDir()
	root := filepath.Join(tmp, "public")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hi there"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "secret.txt"), []byte("hidden"), 0o644))

	eng := newEngine()
	eng.Use(middleware.Static(root))
	eng.Get("/dynamic", okHandler)

	// Act: a file hit answers with its contents and content type.
	res, err := eng.Dispatch(engine.Incoming{Method: "GET", URL: "/hello.txt"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status())
	require.Equal(t, []byte("hi there"), res.Body().Bytes())
	require.Contains(t, res.Header("Content-Type"), "text/plain")

	// Act: a miss falls through to the routes.
	res, err = eng.Dispatch(engine.Incoming{Method: "GET", URL: "/dynamic"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "ok", res.Body().Text())

	// Act: traversal attempts cannot escape root.
	res, err = eng.Dispatch(engine.Incoming{Method: "GET", URL: "/../secret.txt"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.Status())
}
