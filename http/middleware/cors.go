package middleware

import (
	"strings"

	"github.com/slopjs/slop/http/engine"
)

// CORS sets "Access-Control-Allow" style headers on a response.
// The adapter serving the engine must also answer http.MethodOptions
// preflights itself; OPTIONS is outside the engine's route method enum.
func CORS(origin string) engine.HandlerFunc {
	methods := strings.Join([]string{"GET", "POST", "PUT", "DELETE", "PATCH"}, ", ")

	return func(req *engine.Request, res *engine.Response, next engine.Next) {
		if o := req.Header["Origin"]; o == origin || origin == "*" {
			res.SetHeader("Access-Control-Allow-Origin", origin)
			res.SetHeader("Access-Control-Allow-Methods", methods)
			res.SetHeader("Access-Control-Allow-Headers", "Content-Type, X-CSRF-Token")
		}

		next(nil)
	}
}
