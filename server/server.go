package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/slopjs/slop/http/adapter"
	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
	"github.com/valyala/fasthttp"
)

// A Server hosts one [engine.Engine] behind the transport its [Config]
// selects.
type Server struct {
	cfg Config
	eng *engine.Engine
	ls  logger.Logger

	srv  *http.Server
	fsrv *fasthttp.Server
}

// New builds a Server around eng. Options are applied over the defaults
// from [LoadConfig] with an empty path, so env vars are already honored
// before any option runs.
func New(eng *engine.Engine, opts ...OptFn) (*Server, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, eng: eng, ls: logger.New()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.Runtime.Valid(); err != nil {
		return nil, err
	}

	switch s.cfg.Runtime {
	case RuntimeFastHTTP:
		s.fsrv = &fasthttp.Server{
			Handler:      adapter.NewFastHTTP(s.eng, adapter.WithFastHTTPLogger(s.ls)),
			ReadTimeout:  s.cfg.ReadTimeout,
			WriteTimeout: s.cfg.WriteTimeout,
		}
	default:
		s.srv = &http.Server{
			Addr:         s.cfg.Addr,
			Handler:      adapter.NewNetHTTP(s.eng, adapter.WithHandlerLogger(s.ls)),
			ReadTimeout:  s.cfg.ReadTimeout,
			WriteTimeout: s.cfg.WriteTimeout,
		}
	}

	return s, nil
}

// Run serves until one of these stops it:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
//
// or the caller invokes [Server.Shutdown]. In-flight requests get five
// seconds to drain.
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		sig := <-ch
		s.ls.Info(fmt.Sprint("received shutdown signal: ", sig), nil)
		cancel()
	}()

	go func() {
		s.ls.Info(fmt.Sprintf("running %s server at %s", s.cfg.Runtime, s.cfg.Addr), nil)
		if err := s.listen(); err != nil {
			s.ls.Error(fmt.Errorf("could not listen: %w", err).Error(), nil)
		}
		// Covers both listen failures and an external call to Shutdown.
		cancel()
	}()

	<-ctx.Done()
	return s.Shutdown()
}

func (s *Server) listen() error {
	if s.fsrv != nil {
		return s.fsrv.ListenAndServe(s.cfg.Addr)
	}

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.ls.Info("shutting down server", nil)

	switch {
	case s.fsrv != nil:
		if err := s.fsrv.Shutdown(); err != nil {
			return fmt.Errorf("could not shutdown: %w", err)
		}
	case s.srv != nil:
		if err := s.srv.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("could not shutdown: %w", err)
		}
	}

	s.ls.Info("server shutdown successfully", nil)
	return nil
}
