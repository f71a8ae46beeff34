// Package adapter binds an [engine.Engine] to a concrete HTTP transport.
//
// The engine itself never touches a socket. An adapter owns the native
// server machinery, translates each inbound request into an
// [engine.Incoming], runs Dispatch, and serializes the resulting
// [engine.Response] back onto the wire. Two transports are provided:
// [NetHTTP] for the standard library server and [FastHTTP] for
// github.com/valyala/fasthttp. Which one a program uses is the caller's
// choice at construction time; nothing is detected at runtime.
package adapter
