package commands

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/ecomstack/schemapatch/cmd/schemapatch/opts"
	"github.com/ecomstack/schemapatch/pkg/log"
	"github.com/ecomstack/schemapatch/pkg/patch"
	"github.com/ecomstack/schemapatch/pkg/status"
)

// ApplyOptions holds flags for the apply command
type ApplyOptions struct {
	DryRun   bool // check and replace in memory, skip the write
	ShowDiff bool // print a diff of the pending change
	Async    bool // patch distinct target files concurrently
	Backup   bool // keep a .bak copy of each patched file
}

// NewApplyCmd creates a new apply command
func NewApplyCmd(get func() *opts.RootOpts) *cobra.Command {
	var o ApplyOptions
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured patchsets to their target files",
		Long: `Apply runs every patchset against its target file(s). For each file it:
1. Reads the full content as raw bytes (line endings preserved)
2. Verifies each search block is present, in order, aborting on the first miss
3. Replaces exactly the first occurrence of each search block
4. Writes the result back atomically, only after every edit succeeded

A failed edit leaves the file byte-identical on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApply(cmd.Context(), get(), o)
		},
	}

	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false, "verify and patch in memory without writing")
	cmd.Flags().BoolVar(&o.ShowDiff, "diff", false, "print a diff of the change for each target")
	cmd.Flags().BoolVar(&o.Async, "async", false, "patch distinct target files concurrently")
	cmd.Flags().BoolVar(&o.Backup, "backup", false, "keep a .bak copy of each patched file")

	return cmd
}

// RunApply executes the apply operation for every configured patchset
func RunApply(ctx context.Context, ro *opts.RootOpts, o ApplyOptions) error {
	cfg := ro.Config
	st := ro.StatusMgr
	console := ro.Console

	if o.DryRun {
		console.Header("applying patchsets (dry run)")
	} else {
		console.Header("applying patchsets")
	}
	ro.UserLogger.LogRunChange(fmt.Sprintf("Applying %d patchset(s)", len(cfg.Patchsets)))

	for _, ps := range cfg.Patchsets {
		ps := ps
		targets, err := ps.ResolveTargets(cfg.BaseDir())
		if err != nil {
			return errors.Errorf("patchset %q: %w", ps.Name, err)
		}

		console.StartPatchsetOperation(ctx, log.PatchsetOperation{
			Name:    ps.Name,
			Targets: len(targets),
		})
		st.StartOperation(ctx, len(targets))

		edits := ps.PatchEdits()
		var processed atomic.Int32

		jobs := make([]patch.Job, 0, len(targets))
		for _, target := range targets {
			target := target
			jobs = append(jobs, patch.JobFunc(func(ctx context.Context) error {
				return applyToTarget(ctx, ro, ps.Name, target, edits, o, &processed)
			}))
		}

		runner := patch.NewRunner(o.Async)
		if err := runner.Run(ctx, jobs); err != nil {
			console.EndPatchsetOperation(ctx)
			return errors.Errorf("applying patchset %q: %w", ps.Name, err)
		}

		st.FinishOperation(ctx)
		console.EndPatchsetOperation(ctx)
	}

	if o.DryRun {
		ro.UserLogger.LogValidation(true, "All patchsets verified (dry run, nothing written)", nil)
	} else {
		ro.UserLogger.LogValidation(true, "All patchsets applied", nil)
	}
	return nil
}

// applyToTarget patches a single target file. It owns the file for its whole
// read-modify-write span, which is what makes --async safe across targets.
func applyToTarget(ctx context.Context, ro *opts.RootOpts, patchset, target string, edits []patch.Edit, o ApplyOptions, processed *atomic.Int32) error {
	st := ro.StatusMgr
	console := ro.Console

	if o.Backup && !o.DryRun {
		if err := st.BackupFile(ctx, target); err != nil {
			return errors.Errorf("backing up %s: %w", target, err)
		}
	}

	res, err := patch.ApplyToFile(ctx, st, target, edits, patch.FileOptions{DryRun: o.DryRun})
	if err != nil {
		st.TrackTarget(ctx, target, status.TargetInfo{
			Path:     target,
			Patchset: patchset,
			Status:   status.StatusError,
			Error:    err,
		})
		console.LogPatchOperation(ctx, log.PatchOperation{
			Path:    target,
			Status:  "error",
			IsError: true,
		})
		ro.UserLogger.LogTargetChange(log.TargetChange{
			Type:  log.TargetError,
			Path:  target,
			Error: err,
		})
		return err
	}

	if o.ShowDiff {
		printDiff(res.Result)
	}

	targetStatus := status.StatusPatched
	consoleStatus := "patched"
	if o.DryRun {
		targetStatus = status.StatusPending
		consoleStatus = "pending"
	}

	st.TrackTarget(ctx, target, status.TargetInfo{
		Path:     target,
		Patchset: patchset,
		Status:   targetStatus,
		Edits:    res.EditCount,
		Size:     int64(len(res.PatchedContent)),
		DryRun:   o.DryRun,
	})
	console.LogPatchOperation(ctx, log.PatchOperation{
		Path:     target,
		Status:   consoleStatus,
		Edits:    res.EditCount,
		IsDryRun: o.DryRun,
	})

	if o.DryRun {
		ro.UserLogger.LogTargetChange(log.TargetChange{
			Type:        log.TargetSkipped,
			Path:        target,
			Description: "dry run, nothing written",
		})
	} else {
		ro.UserLogger.LogTargetChange(log.TargetChange{
			Type:        log.TargetPatched,
			Path:        target,
			Description: fmt.Sprintf("%d edits", res.EditCount),
		})
	}

	st.UpdateProgress(ctx, int(processed.Add(1)))
	return nil
}

// printDiff renders the pending change as a colored inline diff
func printDiff(res *patch.Result) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(res.OriginalContent), string(res.PatchedContent), false)
	fmt.Println(dmp.DiffPrettyText(diffs))
}
