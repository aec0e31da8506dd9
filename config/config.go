// Package config loads service configuration: defaults, then an optional
// YAML file, then RPCAD_* environment overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dkavolis/rpcad"
)

type Config struct {
	Hostname     string        `yaml:"hostname"`
	Port         int           `yaml:"port"`
	FallbackPort int           `yaml:"fallbackPort"`
	LogLevel     string        `yaml:"logLevel"`
	DrainTimeout time.Duration `yaml:"drainTimeout"`
}

func Default() Config {
	return Config{
		Hostname:     rpcad.DefaultHostname,
		Port:         rpcad.DefaultPort,
		FallbackPort: rpcad.DefaultFallbackPort,
		LogLevel:     "debug",
		DrainTimeout: 30 * time.Second,
	}
}

// Load builds the config. path may be empty to skip the file; keys absent
// from the file keep their defaults, and environment variables win over
// both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.WithMessagef(err, "read config %s", path)
		}
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return Config{}, errors.WithMessagef(err, "parse config %s", path)
		}
	}

	err := applyEnv(&cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if value := os.Getenv("RPCAD_HOSTNAME"); value != "" {
		cfg.Hostname = value
	}
	if value := os.Getenv("RPCAD_LOGLEVEL"); value != "" {
		cfg.LogLevel = value
	}

	for _, port := range []struct {
		env string
		dst *int
	}{
		{env: "RPCAD_PORT", dst: &cfg.Port},
		{env: "RPCAD_FALLBACK_PORT", dst: &cfg.FallbackPort},
	} {
		value := os.Getenv(port.env)
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return errors.WithMessagef(err, "parse %s", port.env)
		}
		*port.dst = parsed
	}
	return nil
}
