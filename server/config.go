package server

import (
	"fmt"
	"os"
	"time"

	"github.com/slopjs/slop"
	"gopkg.in/yaml.v3"
)

// A Runtime names the HTTP transport a [Server] binds its engine to.
type Runtime string

const (
	RuntimeNetHTTP  Runtime = "nethttp"
	RuntimeFastHTTP Runtime = "fasthttp"
)

func (r Runtime) String() string { return string(r) }

func (r Runtime) Valid() error {
	switch r {
	case RuntimeNetHTTP, RuntimeFastHTTP:
		return nil
	default:
		return fmt.Errorf("%w: invalid runtime %q", slop.ErrNotValid, string(r))
	}
}

// A Config holds everything a [Server] needs that is not code.
// Zero values fall back to the defaults applied by [LoadConfig].
type Config struct {
	Addr         string           `yaml:"addr"`
	Env          slop.Environment `yaml:"env"`
	Runtime      Runtime          `yaml:"runtime"`
	ReadTimeout  time.Duration    `yaml:"read_timeout"`
	WriteTimeout time.Duration    `yaml:"write_timeout"`
}

func defaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Env:          slop.Development,
		Runtime:      RuntimeNetHTTP,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// LoadConfig reads path as YAML, then lets environment variables override
// each field. An empty path skips the file and uses env vars over defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: cannot read config %s: %s", slop.ErrBadConfig, path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: cannot parse config %s: %s", slop.ErrBadConfig, path, err)
		}
	}

	cfg.Addr = slop.EnvVarOrString("SERVER_ADDR", cfg.Addr)
	cfg.Env = slop.EnvVarOrEnv("ENVIRONMENT", cfg.Env)
	cfg.Runtime = Runtime(slop.EnvVarOrString("SERVER_RUNTIME", cfg.Runtime.String()))
	cfg.ReadTimeout = slop.EnvVarOrDuration("SERVER_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = slop.EnvVarOrDuration("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout)

	if err := cfg.Runtime.Valid(); err != nil {
		return cfg, err
	}
	if err := cfg.Env.Valid(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
