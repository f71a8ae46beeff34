/*
The middleware package defines a set of basic middlewares for the slop engine.

The available middlewares are:
- CORS
- LogRequest
- Metrics
- RateLimit
- RequestID
- Static

Each is a constructor returning an [engine.HandlerFunc]; register them with
[engine.Engine.Use] or [engine.Engine.UseAt]. Due to the amount of
configuration required, middleware does not provide a default chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	eng.Use(
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.LogRequest(log),
	)
*/
package middleware
