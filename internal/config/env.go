package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from the environment.
// They become the defaults of the matching command-line flags.
type Env struct {
	ConfigPath string `env:"GEMS_CONFIG"`
	DBPath     string `env:"GEMS_DB" envDefault:"~/.gems/scores.db"`
	FPS        int    `env:"GEMS_FPS" envDefault:"30"`
	Seed       int64  `env:"GEMS_SEED" envDefault:"0"`
	SSHAddr    string `env:"GEMS_SSH_ADDR" envDefault:":23234"`
	HostKey    string `env:"GEMS_HOST_KEY"`
	LogLevel   string `env:"GEMS_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
