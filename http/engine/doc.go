/*

Package engine implements slop's request-dispatch core: route and middleware
registration, and the execution of one request across them.

# Dispatch lifecycle

A dispatch walks a fixed sequence of phases. Middleware run first, in
registration order, filtered by path prefix. Then the first route registered
whose method and pattern match the request runs its handler chain. A handler
advances the chain by calling its continuation; calling it with an error
abandons the normal chain and consults the registered error handlers instead.
Throughout, the first handler to set a non-empty response body wins — nothing
downstream of it runs.

	eng := engine.New()
	eng.Use(middleware.LogRequest(l))
	eng.Get("/users/:id", func(req *engine.Request, res *engine.Response, next engine.Next) {
		res.JSON(http.StatusOK, user(req.Params["id"]))
	})

Every dispatch terminates with a well-formed *Response: unmatched requests run
the not-found handler, unclaimed errors and handler panics are converted into
a generic internal-error response.

# Composition

Engines nest: Mount copies a child engine's routes and middleware into a
parent under a path prefix, so route groups can be assembled modularly and
registered as one.

Registration must complete before the first dispatch; afterwards an Engine is
read-only and any number of dispatches may run against it concurrently, each
owning its Request/Response pair exclusively.

*/
package engine
