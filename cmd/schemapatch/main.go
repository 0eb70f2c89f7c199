package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecomstack/schemapatch/cmd/schemapatch/commands"
	"github.com/ecomstack/schemapatch/cmd/schemapatch/opts"
)

func main() {
	ctx := context.Background()

	var ro *opts.RootOpts
	getOpts := func() *opts.RootOpts { return ro }

	rootCmd := &cobra.Command{
		Use:   "schemapatch",
		Short: "A tool for applying literal, all-or-nothing patches to source files",
		Long: `schemapatch applies ordered, exact-substring edits to files on disk.
Each edit must find its search text verbatim (line endings included); the first
miss aborts the run with nothing written. Running it with no flags applies the
built-in validation.js migration against the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now; build logging and shared deps here
			logger := setupLogging()
			cmd.SetContext(logger.WithContext(cmd.Context()))

			var err error
			ro, err = newRootOpts(cmd.Context())
			return err
		},
		// Bare invocation is a plain apply, matching the original one-shot script
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApply(cmd.Context(), ro, commands.ApplyOptions{})
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewApplyCmd(getOpts),
		commands.NewVerifyCmd(getOpts),
		commands.NewRestoreCmd(getOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ro != nil {
			ro.UserLogger.LogValidation(false, "Command failed", err)
		}
		os.Exit(1)
	}
}
