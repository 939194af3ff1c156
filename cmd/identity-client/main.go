package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ruteri/signature-registry/api/clients"
	"github.com/ruteri/signature-registry/cmd/flags"
	"github.com/ruteri/signature-registry/identity"
	"github.com/ruteri/signature-registry/keystore"
	"github.com/urfave/cli/v2"
)

var errMissingArgument = errors.New("missing argument")

func newHolder(cCtx *cli.Context) *identity.Holder {
	logger := flags.SetupLogger(cCtx)
	store := keystore.NewFileStore(cCtx.String(flags.KeyDirFlag.Name), logger)
	client := clients.NewRegistryClient(cCtx.String(flags.ServerAddrFlag.Name))
	return identity.NewHolder(store, client, logger)
}

func requireArgs(cCtx *cli.Context, n int) error {
	if cCtx.NArg() < n {
		return fmt.Errorf("%w: usage: %s %s", errMissingArgument, cCtx.Command.Name, cCtx.Command.ArgsUsage)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "identity-client",
		Usage: "Generate a key pair, register it with the signature registry, sign and verify messages",
		Flags: append([]cli.Flag{
			flags.ServerAddrFlag,
			flags.KeyDirFlag,
			flags.LogServiceFlagFn("identity-client"),
		}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:    "generate-keys",
				Aliases: []string{"gk"},
				Usage:   "Generate a new key pair",
				Flags:   []cli.Flag{flags.KeyBitsFlag},
				Action: func(cCtx *cli.Context) error {
					fmt.Println("Generating key pair...")
					kp, err := newHolder(cCtx).GenerateKeys(cCtx.Int(flags.KeyBitsFlag.Name))
					if err != nil {
						return err
					}
					fmt.Println("Key pair generated and stored successfully.")
					if fingerprint, err := kp.PublicKey.Fingerprint(); err == nil {
						fmt.Println("Fingerprint:", fingerprint)
					}
					return nil
				},
			},
			{
				Name:      "submit-public-key",
				Aliases:   []string{"spk"},
				Usage:     "Send the public key to the server (server password required)",
				ArgsUsage: "<password>",
				Action: func(cCtx *cli.Context) error {
					if err := requireArgs(cCtx, 1); err != nil {
						return err
					}
					if err := newHolder(cCtx).SubmitPublicKey(cCtx.Context, cCtx.Args().First()); err != nil {
						return err
					}
					fmt.Println("Public key submitted successfully.")
					return nil
				},
			},
			{
				Name:      "sign-message",
				Aliases:   []string{"sm"},
				Usage:     "Sign the provided message",
				ArgsUsage: "<message>",
				Action: func(cCtx *cli.Context) error {
					if err := requireArgs(cCtx, 1); err != nil {
						return err
					}
					signed, err := newHolder(cCtx).SignMessage(cCtx.Args().First())
					if err != nil {
						return err
					}
					fmt.Println("Message:", signed.Message)
					fmt.Println("Signature:", signed.Signature)
					return nil
				},
			},
			{
				Name:      "verify-message",
				Aliases:   []string{"vm"},
				Usage:     "Ask the server to verify a message signature",
				ArgsUsage: "<message> <signature>",
				Action: func(cCtx *cli.Context) error {
					if err := requireArgs(cCtx, 2); err != nil {
						return err
					}
					message, signature := cCtx.Args().Get(0), cCtx.Args().Get(1)

					fmt.Println("Verifying message:", message)
					fmt.Println("Signature:", signature)

					resp, err := newHolder(cCtx).VerifyMessage(cCtx.Context, message, signature)
					if err != nil {
						return err
					}

					out, err := json.Marshal(resp)
					if err != nil {
						return err
					}
					fmt.Println("Server response:", string(out))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
