package flags

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// Flags reading the environment record what they found on the flag value
// itself, so every run gets its own copy.
var (
	pristineConfig   = *ConfigFlag
	pristinePassword = *PasswordFlag
	pristinePort     = *PortFlag
)

func runWithFlags(t *testing.T, args []string, action cli.ActionFunc) {
	t.Helper()
	configFlag, passwordFlag, portFlag := pristineConfig, pristinePassword, pristinePort
	app := &cli.App{
		Name: "test",
		Flags: append([]cli.Flag{
			&configFlag,
			&passwordFlag,
			&portFlag,
			ListenAddrFlag,
			BcryptCostFlag,
			LogServiceFlagFn("test-service"),
		}, CommonFlags...),
		Action: action,
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestListenAddr(t *testing.T) {
	unsetEnv(t, "PORT")

	runWithFlags(t, nil, func(cCtx *cli.Context) error {
		assert.Equal(t, ":3000", ListenAddr(cCtx))
		return nil
	})

	runWithFlags(t, []string{"--port", "4000"}, func(cCtx *cli.Context) error {
		assert.Equal(t, ":4000", ListenAddr(cCtx))
		return nil
	})

	runWithFlags(t, []string{"--port", "4000", "--listen-addr", "127.0.0.1:5000"}, func(cCtx *cli.Context) error {
		assert.Equal(t, "127.0.0.1:5000", ListenAddr(cCtx))
		return nil
	})
}

func TestApplyFileConfig(t *testing.T) {
	unsetEnv(t, "PORT")
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: 0.0.0.0:4000
metrics_addr: 127.0.0.1:9999
bcrypt_cost: 12
drain_seconds: 1
log:
  service: from-file
`), 0644))

	args := []string{"--config", path, "--bcrypt-cost", "11"}
	runWithFlags(t, args, func(cCtx *cli.Context) error {
		require.NoError(t, ApplyFileConfig(cCtx))

		assert.Equal(t, "0.0.0.0:4000", ListenAddr(cCtx))
		assert.Equal(t, 11, cCtx.Int(BcryptCostFlag.Name), "explicit flag wins")
		assert.Equal(t, "from-file", cCtx.String("log-service"))

		cfg := ConfigureServer(cCtx, nil, ListenAddr(cCtx))
		assert.Equal(t, "127.0.0.1:9999", cfg.MetricsAddr)
		assert.Equal(t, time.Second, cfg.DrainDuration)
		return nil
	})
}

func TestApplyFileConfigErrors(t *testing.T) {
	runWithFlags(t, nil, func(cCtx *cli.Context) error {
		assert.NoError(t, ApplyFileConfig(cCtx), "no config file is fine")
		return nil
	})

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("password: secret123\n"), 0644))

	runWithFlags(t, []string{"--config", path}, func(cCtx *cli.Context) error {
		assert.Error(t, ApplyFileConfig(cCtx))
		return nil
	})
}

func TestApplyFileConfigPortBeatsFileListenAddr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 0.0.0.0:5000\n"), 0644))

	unsetEnv(t, "PORT")
	runWithFlags(t, []string{"--config", path, "--port", "4000"}, func(cCtx *cli.Context) error {
		require.NoError(t, ApplyFileConfig(cCtx))
		assert.Equal(t, ":4000", ListenAddr(cCtx))
		return nil
	})

	t.Setenv("PORT", "4001")
	runWithFlags(t, []string{"--config", path}, func(cCtx *cli.Context) error {
		require.NoError(t, ApplyFileConfig(cCtx))
		assert.Equal(t, ":4001", ListenAddr(cCtx))
		return nil
	})

	// An explicit listen address still wins over everything
	runWithFlags(t, []string{"--config", path, "--listen-addr", "127.0.0.1:6000"}, func(cCtx *cli.Context) error {
		require.NoError(t, ApplyFileConfig(cCtx))
		assert.Equal(t, "127.0.0.1:6000", ListenAddr(cCtx))
		return nil
	})
}

func TestPassword(t *testing.T) {
	t.Setenv("REGISTRY_PASSWORD", "from-env")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "argument beats flag", args: []string{"--password", "from-flag", "from-arg"}, want: "from-arg"},
		{name: "flag beats env", args: []string{"--password", "from-flag"}, want: "from-flag"},
		{name: "env", args: nil, want: "from-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runWithFlags(t, tt.args, func(cCtx *cli.Context) error {
				password, err := Password(cCtx)
				require.NoError(t, err)
				assert.Equal(t, tt.want, password)
				return nil
			})
		})
	}
}

func TestPasswordMissing(t *testing.T) {
	unsetEnv(t, "REGISTRY_PASSWORD")

	runWithFlags(t, nil, func(cCtx *cli.Context) error {
		_, err := Password(cCtx)
		assert.ErrorIs(t, err, ErrNoPassword)
		return nil
	})
}
