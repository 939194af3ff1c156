package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/signature-registry/api/servers"
	"github.com/ruteri/signature-registry/cmd/flags"
	"github.com/ruteri/signature-registry/common"
	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/registry"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "registry-server",
		Usage:     "Serve the signature registry API",
		ArgsUsage: "[password]",
		Flags: append([]cli.Flag{
			flags.ConfigFlag,
			flags.PasswordFlag,
			flags.PortFlag,
			flags.ListenAddrFlag,
			flags.BcryptCostFlag,
			flags.LogServiceFlagFn(common.PackageName),
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			if err := flags.ApplyFileConfig(cCtx); err != nil {
				return err
			}

			logger := flags.SetupLogger(cCtx)

			password, err := flags.Password(cCtx)
			if err != nil {
				logger.Error("No registration password configured")
				return err
			}

			// The credential must exist before the listener accepts requests
			credential, err := cryptoutils.NewCredential(password, cCtx.Int(flags.BcryptCostFlag.Name))
			if err != nil {
				logger.Error("Failed to hash registration password", "err", err)
				return err
			}
			cost, err := credential.Cost()
			if err != nil {
				logger.Error("Failed to read bcrypt cost", "err", err)
				return err
			}
			logger.Info("Registration password hashed", slog.Int("bcryptCost", cost))

			reg, err := registry.NewRegistry(credential, logger)
			if err != nil {
				logger.Error("Failed to create registry", "err", err)
				return err
			}

			cfg := flags.ConfigureServer(cCtx, logger, flags.ListenAddr(cCtx))
			server, err := servers.New(cfg, reg)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
