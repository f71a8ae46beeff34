// Package server runs an [engine.Engine] as a long-lived process.
//
// A [Server] owns the listener lifecycle: it loads configuration, binds
// the engine to the transport the configuration names, serves until a
// shutdown signal arrives, and then drains in-flight requests before
// exiting. Construct one with [New] and a set of options, then call
// [Server.Run].
package server
