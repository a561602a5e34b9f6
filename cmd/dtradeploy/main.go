// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storj.io/dtradeploy/network"
)

// Version is set at build time.
var Version = "dev"

// command holds state shared by subcommands.
type command struct {
	stdout, stderr io.Writer
	environ        network.Lookup

	envFile  string
	logLevel string
	jsonOut  bool
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr, network.OSLookup)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer, environ network.Lookup) *cobra.Command {
	cmd := &command{
		stdout:  stdout,
		stderr:  stderr,
		environ: environ,
	}

	root := &cobra.Command{
		Use:   "dtradeploy",
		Short: "Deploy the DTRA vesting vault and crowdsale",
		Long: `dtradeploy deploys the DTRA vesting vault and crowdsale contracts, wires the
vault into the sale and sets the native currency price.

Configuration is read from the environment and from an optional env file:
  HEDERA_RPC_URL, HEDERA_CHAIN_ID             target network
  HEDERA_OPERATOR_KEY (or PRIVATE_KEY)        0x prefixed signing key
  HEDERA_OPERATOR_MNEMONIC, _INDEX            BIP-39 signing credential
  DTRA_TOKEN, TREASURY                        required addresses`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cmd.envFile, "env-file", ".env", "env file with KEY=VALUE lines, ignored when missing")
	flags.StringVar(&cmd.logLevel, "log-level", "info", "log level")
	flags.BoolVar(&cmd.jsonOut, "json", false, "output in JSON format")

	root.AddCommand(
		cmd.newDeployCmd(),
		cmd.newProfileCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(c *cobra.Command, args []string) {
				_, _ = fmt.Fprintf(cmd.stdout, "dtradeploy version %s\n", Version)
			},
		},
	)
	return root
}

// lookup returns the environment merged with the env file, the environment wins.
func (cmd *command) lookup() (network.Lookup, error) {
	file := viper.New()
	if cmd.envFile != "" {
		_, err := os.Stat(cmd.envFile)
		switch {
		case err == nil:
			file.SetConfigFile(cmd.envFile)
			file.SetConfigType("env")
			if err := file.ReadInConfig(); err != nil {
				return nil, errs.New("reading %s: %v", cmd.envFile, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, errs.Wrap(err)
		}
	}

	return func(key string) (string, bool) {
		if value, ok := cmd.environ(key); ok {
			return value, true
		}
		if file.IsSet(key) {
			return file.GetString(key), true
		}
		return "", false
	}, nil
}

func (cmd *command) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cmd.logLevel)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.stderr),
		level)
	return zap.New(core), nil
}

func (cmd *command) printJSON(v interface{}) error {
	enc := json.NewEncoder(cmd.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
