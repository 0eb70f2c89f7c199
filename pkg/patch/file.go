package patch

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// FileManager is the slice of file operations ApplyToFile needs. It is
// implemented by status.Manager.
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// FileOptions controls how a file is patched
type FileOptions struct {
	// DryRun performs every check and replacement in memory but skips the write
	DryRun bool
}

// FileResult contains the outcome of patching one file
type FileResult struct {
	*Result

	// Path is the patched file
	Path string

	// Written indicates whether the file was rewritten on disk
	Written bool
}

// ApplyToFile reads path as raw bytes, applies the edits in order, and writes
// the result back atomically. The write happens only after every edit has
// succeeded; any failure leaves the file byte-identical on disk. Content is
// never normalized, so line endings in the search text must match the file
// exactly.
func ApplyToFile(ctx context.Context, fs FileManager, path string, edits []Edit, opts FileOptions) (*FileResult, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidateEdits(edits); err != nil {
		return nil, errors.Errorf("validating edits: %w", err)
	}

	content, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	result, err := Apply(ctx, content, edits)
	if err != nil {
		return nil, errors.Errorf("patching %s: %w", path, err)
	}

	fileResult := &FileResult{
		Result: result,
		Path:   path,
	}

	if opts.DryRun {
		logger.Debug().Str("path", path).Msg("dry run, skipping write")
		return fileResult, nil
	}

	if err := fs.WriteFileAtomic(ctx, path, result.PatchedContent); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}
	fileResult.Written = true

	logger.Debug().
		Str("path", path).
		Int("edits", result.EditCount).
		Int("size_before", len(result.OriginalContent)).
		Int("size_after", len(result.PatchedContent)).
		Msg("patched file")

	return fileResult, nil
}

// ClassifyFile reads path and classifies it against the edits
func ClassifyFile(ctx context.Context, fs FileManager, path string, edits []Edit) (State, error) {
	content, err := fs.ReadFile(ctx, path)
	if err != nil {
		return StateUnknown, errors.Errorf("reading %s: %w", path, err)
	}
	return Classify(ctx, content, edits), nil
}
