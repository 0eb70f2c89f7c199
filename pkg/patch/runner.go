package patch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is a unit of work the runner executes, one per target file
type Job interface {
	Execute(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Execute implements Job
func (f JobFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Runner executes jobs either sequentially (the default) or concurrently.
// Concurrency is only safe across distinct target files; edits within one file
// are always applied by a single job.
type Runner struct {
	async bool
}

// NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// Run executes the jobs. In sequential mode the first failure stops the run.
// In async mode every job runs in its own goroutine via errgroup and the first
// error cancels the group's context.
func (r *Runner) Run(ctx context.Context, jobs []Job) error {
	if !r.async {
		for _, job := range jobs {
			if err := job.Execute(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return job.Execute(ctx)
		})
	}
	return g.Wait()
}
