// Package flags holds the command line flags and setup helpers shared by the
// registry server and the identity client.
package flags

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/signature-registry/api"
	"github.com/ruteri/signature-registry/common"
	"github.com/ruteri/signature-registry/config"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(logServiceFlagName)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ErrNoPassword is returned by Password when no source supplies one.
var ErrNoPassword = errors.New("a registration password is required: pass it as the first argument, --password or REGISTRY_PASSWORD")

// Password resolves the registration password: the first positional
// argument, then --password, then REGISTRY_PASSWORD.
func Password(cCtx *cli.Context) (string, error) {
	if password := cCtx.Args().First(); password != "" {
		return password, nil
	}
	if password := cCtx.String(PasswordFlag.Name); password != "" {
		return password, nil
	}
	return "", ErrNoPassword
}

// ListenAddr resolves the API listen address: --listen-addr if given,
// otherwise ":" followed by the port flag (PORT env, default 3000).
func ListenAddr(cCtx *cli.Context) string {
	if addr := cCtx.String(ListenAddrFlag.Name); addr != "" {
		return addr
	}
	return ":" + cCtx.String(PortFlag.Name)
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: api.DefaultGracefulShutdownDuration,
		ReadTimeout:              api.DefaultReadTimeout,
		WriteTimeout:             api.DefaultWriteTimeout,
	}
}

// ApplyFileConfig loads the --config file, if any, and copies its values
// into every flag that was not set explicitly or through the environment.
func ApplyFileConfig(cCtx *cli.Context) error {
	path := cCtx.String(ConfigFlag.Name)
	if path == "" {
		return nil
	}

	fc, err := config.Load(path)
	if err != nil {
		return err
	}

	values := map[string]string{}
	// An operator-chosen port outranks the file's listen address
	if fc.ListenAddr != "" && !cCtx.IsSet(PortFlag.Name) {
		values[ListenAddrFlag.Name] = fc.ListenAddr
	}
	if fc.MetricsAddr != "" {
		values[MetricsAddrFlag.Name] = fc.MetricsAddr
	}
	if fc.BcryptCost != 0 {
		values[BcryptCostFlag.Name] = strconv.Itoa(fc.BcryptCost)
	}
	if fc.DrainSeconds != nil {
		values[DrainSecondsFlag.Name] = strconv.FormatInt(*fc.DrainSeconds, 10)
	}
	if fc.Pprof {
		values[PprofFlag.Name] = "true"
	}
	if fc.Log.JSON {
		values[LogJsonFlag.Name] = "true"
	}
	if fc.Log.Debug {
		values[LogDebugFlag.Name] = "true"
	}
	if fc.Log.UID {
		values[LogUidFlag.Name] = "true"
	}
	if fc.Log.Service != "" {
		values[logServiceFlagName] = fc.Log.Service
	}

	for name, value := range values {
		if cCtx.IsSet(name) {
			continue
		}
		if err := cCtx.Set(name, value); err != nil {
			return fmt.Errorf("could not apply %s from config file: %w", name, err)
		}
	}
	return nil
}

var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "optional YAML file with server defaults; explicit flags take precedence",
	EnvVars: []string{"REGISTRY_CONFIG"},
}

var PasswordFlag = &cli.StringFlag{
	Name:    "password",
	Usage:   "registration password; may also be given as the first argument",
	EnvVars: []string{"REGISTRY_PASSWORD"},
}

var PortFlag = &cli.StringFlag{
	Name:    "port",
	Value:   api.DefaultPort,
	Usage:   "port to listen on for API when --listen-addr is not set",
	EnvVars: []string{"PORT"},
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Usage: "address to listen on for API, overrides --port",
}

var BcryptCostFlag = &cli.IntFlag{
	Name:  "bcrypt-cost",
	Value: cryptoutils.DefaultBcryptCost,
	Usage: "bcrypt cost used to hash the registration password",
}

var ServerAddrFlag = &cli.StringFlag{
	Name:    "server",
	Value:   "http://localhost:" + api.DefaultPort,
	Usage:   "registry server address",
	EnvVars: []string{"REGISTRY_SERVER"},
}

var KeyDirFlag = &cli.StringFlag{
	Name:  "key-dir",
	Value: ".",
	Usage: "directory holding private_key.pem and public_key.pem",
}

var KeyBitsFlag = &cli.IntFlag{
	Name:  "bits",
	Value: cryptoutils.DefaultKeyBits,
	Usage: "RSA modulus size for generated keys (at least 2048)",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

const logServiceFlagName = "log-service"

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  logServiceFlagName,
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: int64(api.DefaultDrainDuration / time.Second),
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: api.DefaultMetricsAddr,
	Usage: "address to listen on for Prometheus metrics, empty to disable",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
