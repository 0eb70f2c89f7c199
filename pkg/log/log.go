// Copyright 2025 ecomstack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent target entries
	nameWidth   = 35 // Base width for target path
	statusWidth = 15 // Width for status text
)

// 🎯 PatchOperation represents a patched target for logging
type PatchOperation struct {
	Path     string // Target file path
	Status   string // Operation status (patched/pending/applied/conflict/error)
	Edits    int    // Number of edits applied
	IsDryRun bool   // Whether the write was skipped
	IsError  bool   // Whether the operation failed
}

// 📦 PatchsetOperation represents a patchset run for logging
type PatchsetOperation struct {
	Name    string // Patchset name
	Targets int    // Number of resolved target files
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *PatchsetOperation
	operations []PatchOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatPatchOperation formats a patch operation for display
func (l *Logger) formatPatchOperation(op PatchOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsError:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsDryRun:
		symbol = '◌'
		symbolColor = color.FgYellow
	case op.Status == "patched":
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.Status == "applied":
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	// Format status with color
	var statusColor color.Attribute
	switch op.Status {
	case "patched":
		statusColor = color.FgGreen
	case "conflict", "error":
		statusColor = color.FgRed
	default:
		statusColor = color.FgYellow
	}

	edits := ""
	if op.Edits > 0 {
		edits = fmt.Sprintf("%d edits", op.Edits)
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(statusColor).Sprint(fmt.Sprintf("%-*s", statusWidth, op.Status)),
		edits)
}

// 📝 LogPatchOperation logs a patch operation
func (l *Logger) LogPatchOperation(ctx context.Context, op PatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatPatchOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("status", op.Status).
		Int("edits", op.Edits).
		Bool("is_dry_run", op.IsDryRun).
		Bool("is_error", op.IsError).
		Msg("patch operation")
}

// 📝 StartPatchsetOperation starts a new patchset run
func (l *Logger) StartPatchsetOperation(ctx context.Context, op PatchsetOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d target(s)", op.Targets))

	l.zlog.Info().
		Str("patchset", op.Name).
		Int("targets", op.Targets).
		Msg("starting patchset")
}

// 📝 EndPatchsetOperation ends the current patchset run
func (l *Logger) EndPatchsetOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("patchset", l.currentOp.Name).
		Int("files", len(l.operations)).
		Msg("patchset complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("schemapatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}
