package patch

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrSearchNotFound is the base error returned when an edit's search text is
// absent from the content it is applied to. Callers can match it with errors.Is.
var ErrSearchNotFound = errors.Base("search text not found")

// Edit is a single literal substitution: replace the first occurrence of Search
// with Replace. Search is matched as an exact substring, including whitespace
// and line endings. No pattern matching of any kind.
type Edit struct {
	// Name identifies the edit in error and log messages
	Name string

	// Search is the literal text that must exist in the content
	Search string

	// Replace is the literal text that supersedes the first occurrence of Search
	Replace string
}

// label returns the name used for this edit in messages
func (e Edit) label(i int) string {
	if e.Name != "" {
		return e.Name
	}
	return "edit " + strconv.Itoa(i+1)
}

// Result contains the outcome of applying a sequence of edits
type Result struct {
	// WasModified indicates if any edit changed the content
	WasModified bool

	// EditCount is the number of edits applied
	EditCount int

	// OriginalContent is the content before any edits
	OriginalContent []byte

	// PatchedContent is the content after all edits
	PatchedContent []byte
}

// Apply runs the edits in order against content. Each edit must find its search
// text in the output of the previous edit; the first miss aborts the whole run
// with an error wrapping ErrSearchNotFound and naming the edit. Only the first
// occurrence of each search text is replaced.
func Apply(ctx context.Context, content []byte, edits []Edit) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		PatchedContent:  content,
	}

	current := string(content)
	for i, edit := range edits {
		if !strings.Contains(current, edit.Search) {
			return nil, errors.Errorf("%s: %w", edit.label(i), ErrSearchNotFound)
		}

		current = strings.Replace(current, edit.Search, edit.Replace, 1)
		result.EditCount++
		if edit.Search != edit.Replace {
			result.WasModified = true
		}

		logger.Debug().
			Str("edit", edit.label(i)).
			Int("search_len", len(edit.Search)).
			Int("replace_len", len(edit.Replace)).
			Msg("applied edit")
	}

	result.PatchedContent = []byte(current)
	return result, nil
}

// ValidateEdits checks that all edits are well formed
func ValidateEdits(edits []Edit) error {
	if len(edits) == 0 {
		return errors.New("at least one edit is required")
	}
	for i, edit := range edits {
		if edit.Search == "" {
			return errors.Errorf("%s: search is required", edit.label(i))
		}
		if edit.Search == edit.Replace {
			return errors.Errorf("%s: search and replace are identical", edit.label(i))
		}
	}
	return nil
}

// State classifies a target file relative to a set of edits
type State int

const (
	StateUnknown  State = iota
	StatePending        // every search block is present; the patch can be applied
	StateApplied        // search blocks are gone and every replacement block is present
	StateConflict       // neither pending nor applied; the file has drifted
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateApplied:
		return "applied"
	case StateConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Classify reports whether content is still patchable, already patched, or has
// drifted away from both shapes. A trial application decides "pending" so that
// the sequential semantics of Apply are honored exactly.
func Classify(ctx context.Context, content []byte, edits []Edit) State {
	if _, err := Apply(ctx, content, edits); err == nil {
		return StatePending
	}

	current := string(content)
	for _, edit := range edits {
		if !strings.Contains(current, edit.Replace) {
			return StateConflict
		}
	}
	return StateApplied
}
