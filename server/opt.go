package server

import (
	"github.com/slopjs/slop/logger"
)

type OptFn func(*Server)

// WithConfig replaces the loaded configuration wholesale.
func WithConfig(cfg Config) OptFn {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithAddr overrides the listen address.
func WithAddr(addr string) OptFn {
	return func(s *Server) {
		s.cfg.Addr = addr
	}
}

// WithRuntime selects the transport the engine is served through.
func WithRuntime(r Runtime) OptFn {
	return func(s *Server) {
		s.cfg.Runtime = r
	}
}

// WithLogger overrides the logger the server and its adapter use.
func WithLogger(ls logger.Logger) OptFn {
	return func(s *Server) {
		s.ls = ls
	}
}
