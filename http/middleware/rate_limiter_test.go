package middleware_test

import (
	"net/http"
	"testing"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/http/middleware"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	// Arrange
	vs := middleware.NewVisitors()
	eng := newEngine()
	eng.Use(middleware.RateLimit(vs))
	eng.Get("/", okHandler)

	in := engine.Incoming{
		Method: "GET",
		URL:    "/",
		Header: map[string]string{"X-Forwarded-For": "203.0.113.7"},
	}

	// Act: the burst allowance admits the first 20 requests.
	var last *engine.Response
	for i := 0; i < 21; i++ {
		var err error
		last, err = eng.Dispatch(in)
		require.NoError(t, err)
	}

	// Assert
	require.Equal(t, http.StatusTooManyRequests, last.Status())
}

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   map[string]string
		expected string
	}{
		{"No-Headers", map[string]string{}, "0.0.0.0"},
		{"Public-Address", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"Skips-Private", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.1.2.3"}, "203.0.113.7"},
		{"Real-Ip-Fallback", map[string]string{"X-Real-Ip": "198.51.100.9"}, "198.51.100.9"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act + Assert
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.header))
		})
	}
}
