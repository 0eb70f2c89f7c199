package log

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about patch runs
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 TargetChangeType represents the type of change made to a target
type TargetChangeType int

const (
	TargetPatched TargetChangeType = iota
	TargetSkipped
	TargetError
)

// 🖼️ TargetChange represents a change to a patch target
type TargetChange struct {
	Type        TargetChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogTargetChange logs a target change with appropriate emoji and formatting
func (u *UserLogger) LogTargetChange(change TargetChange) {
	// Get relative path for cleaner output
	relPath := filepath.Base(change.Path)

	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case TargetPatched:
		action = "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "🔄"})
	case TargetSkipped:
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case TargetError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogRunChange logs a change to the overall run
func (u *UserLogger) LogRunChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
