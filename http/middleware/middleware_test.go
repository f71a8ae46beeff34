package middleware_test

import (
	"io"
	"log"
	"net/http"

	"github.com/slopjs/slop/http/engine"
	"github.com/slopjs/slop/logger"
)

func newEngine() *engine.Engine {
	quiet := logger.New(
		logger.WithLogger(log.New(io.Discard, "", 0)),
		logger.WithLevel(logger.LogLevelFatal),
	)
	return engine.New(engine.WithLogger(quiet))
}

func okHandler(req *engine.Request, res *engine.Response, next engine.Next) {
	res.Text(http.StatusOK, "ok")
}
