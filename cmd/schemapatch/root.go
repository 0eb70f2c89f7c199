package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/ecomstack/schemapatch/cmd/schemapatch/opts"
	"github.com/ecomstack/schemapatch/pkg/config"
	"github.com/ecomstack/schemapatch/pkg/log"
	"github.com/ecomstack/schemapatch/pkg/schemas"
	"github.com/ecomstack/schemapatch/pkg/status"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies.
// Without a config file the built-in validation.js patchset is used, resolved
// against the current working directory — the zero-flag invocation this tool
// was originally written for.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	logger := zerolog.Ctx(ctx)
	userLogger := log.NewUserLogger(ctx)
	console := log.New(os.Stdout, logger.GetLevel())

	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{Patchsets: []config.Patchset{schemas.Builtin()}}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating built-in patchset: %w", err)
		}
	}

	statusMgr := status.New(cfg.BaseDir(), logger)

	return &opts.RootOpts{
		Config:     cfg,
		StatusMgr:  statusMgr,
		UserLogger: userLogger,
		Console:    console,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: built-in validation.js patchset)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
