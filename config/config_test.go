package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkavolis/rpcad/config"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	for _, env := range []string{"RPCAD_HOSTNAME", "RPCAD_PORT", "RPCAD_FALLBACK_PORT", "RPCAD_LOGLEVEL"} {
		t.Setenv(env, "")
	}

	cfg, err := config.Load("")
	require.NoError(err)
	require.EqualValues(config.Config{
		Hostname:     "localhost",
		Port:         18888,
		FallbackPort: 18898,
		LogLevel:     "debug",
		DrainTimeout: 30 * time.Second,
	}, cfg)
}

func TestFileOverridesDefaults(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "rpcad.yaml")
	require.NoError(os.WriteFile(path, []byte("port: 28888\nlogLevel: info\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(err)
	require.EqualValues(28888, cfg.Port)
	require.EqualValues("info", cfg.LogLevel)
	require.EqualValues("localhost", cfg.Hostname)
	require.EqualValues(18898, cfg.FallbackPort)
}

func TestEnvOverridesFile(t *testing.T) {
	require := require.New(t)

	t.Setenv("RPCAD_HOSTNAME", "0.0.0.0")
	t.Setenv("RPCAD_PORT", "38888")
	t.Setenv("RPCAD_FALLBACK_PORT", "38898")
	t.Setenv("RPCAD_LOGLEVEL", "warn")

	path := filepath.Join(t.TempDir(), "rpcad.yaml")
	require.NoError(os.WriteFile(path, []byte("port: 28888\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(err)
	require.EqualValues("0.0.0.0", cfg.Hostname)
	require.EqualValues(38888, cfg.Port)
	require.EqualValues(38898, cfg.FallbackPort)
	require.EqualValues("warn", cfg.LogLevel)
}

func TestInvalidInput(t *testing.T) {
	require := require.New(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(err)

	path := filepath.Join(t.TempDir(), "rpcad.yaml")
	require.NoError(os.WriteFile(path, []byte("port: [\n"), 0o644))
	_, err = config.Load(path)
	require.Error(err)

	t.Setenv("RPCAD_PORT", "not-a-port")
	_, err = config.Load("")
	require.Error(err)
}
