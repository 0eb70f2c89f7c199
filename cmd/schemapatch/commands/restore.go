package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/ecomstack/schemapatch/cmd/schemapatch/opts"
	"github.com/ecomstack/schemapatch/pkg/log"
	"github.com/ecomstack/schemapatch/pkg/status"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(get func() *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore targets from the .bak copies left by apply --backup",
		Long: `Restore puts every target back to its pre-patch content using the .bak
copy that apply --backup leaves next to it. Each successful restore consumes
its backup. Targets without a backup are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRestore(cmd.Context(), get())
		},
	}

	return cmd
}

// RunRestore executes the restore operation for every configured patchset
func RunRestore(ctx context.Context, ro *opts.RootOpts) error {
	cfg := ro.Config
	st := ro.StatusMgr
	console := ro.Console

	console.Header("restoring patch targets")

	restored := 0
	for _, ps := range cfg.Patchsets {
		targets, err := ps.ResolveTargets(cfg.BaseDir())
		if err != nil {
			return errors.Errorf("patchset %q: %w", ps.Name, err)
		}

		for _, target := range targets {
			hasBackup, err := st.FileExists(ctx, target+".bak")
			if err != nil {
				return errors.Errorf("checking backup for %s: %w", target, err)
			}
			if !hasBackup {
				console.LogPatchOperation(ctx, log.PatchOperation{
					Path:   target,
					Status: "skipped",
				})
				continue
			}

			if err := st.RestoreFile(ctx, target); err != nil {
				ro.UserLogger.LogTargetChange(log.TargetChange{
					Type:  log.TargetError,
					Path:  target,
					Error: err,
				})
				return errors.Errorf("restoring %s: %w", target, err)
			}

			st.TrackTarget(ctx, target, status.TargetInfo{
				Path:     target,
				Patchset: ps.Name,
				Status:   status.StatusPending,
			})
			console.LogPatchOperation(ctx, log.PatchOperation{
				Path:   target,
				Status: "restored",
			})
			restored++
		}
	}

	if restored == 0 {
		ro.UserLogger.LogValidation(false, "No backup files found, nothing restored", nil)
		return nil
	}

	ro.UserLogger.LogValidation(true, fmt.Sprintf("Restored %d target(s)", restored), nil)
	return nil
}
