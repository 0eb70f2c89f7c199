package status

import (
	"fmt"
)

// TargetFormatter defines how patch targets and progress should be formatted
type TargetFormatter interface {
	// FormatTarget formats a target status message
	FormatTarget(path string, status TargetStatus, edits int) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultTargetFormatter provides a default implementation of TargetFormatter
type DefaultTargetFormatter struct{}

// NewDefaultTargetFormatter creates a new DefaultTargetFormatter
func NewDefaultTargetFormatter() *DefaultTargetFormatter {
	return &DefaultTargetFormatter{}
}

// FormatTarget formats a target status message with emojis
func (f *DefaultTargetFormatter) FormatTarget(path string, status TargetStatus, edits int) string {
	switch status {
	case StatusPatched:
		return fmt.Sprintf("📝 Patched %s (%d edits)", path, edits)
	case StatusPending:
		return fmt.Sprintf("⏳ Pending %s", path)
	case StatusApplied:
		return fmt.Sprintf("👍 Already applied %s", path)
	case StatusConflict:
		return fmt.Sprintf("⚠️  Conflict %s", path)
	case StatusError:
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("❓ Unknown %s", path)
	}
}

// FormatProgress formats a progress message over the run's targets
func (f *DefaultTargetFormatter) FormatProgress(current, total int) string {
	if total == 0 {
		return "✅ No targets to patch"
	}
	if current >= total {
		return fmt.Sprintf("✅ All %d target(s) processed", total)
	}
	return fmt.Sprintf("⏳ %d of %d target(s) processed", current, total)
}

// FormatError formats an error message with emoji
func (f *DefaultTargetFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
