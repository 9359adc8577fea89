// Package log wires the process-wide slog default to a rotating file with
// the charm log handler.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the default slog logger to logFile with size-based rotation.
// With debug enabled the level drops to debug and callers are reported.
func Setup(logFile string, debug bool) {
	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(writer, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		ReportCaller:    debug,
	})
	slog.SetDefault(slog.New(handler))
}

// RecoverPanic logs a recovered panic to a timestamped file next to the
// process, then runs cleanup. Deferred at the top of goroutines that must
// not take the process down.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		filename := fmt.Sprintf("devops-dash-panic-%s.log", time.Now().Format("20060102-150405"))

		file, err := os.Create(filename)
		if err == nil {
			defer file.Close() //nolint:errcheck
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
			slog.Error("panic recovered", "source", name, "details", filepath.Base(filename))
		} else {
			slog.Error("panic recovered", "source", name, "error", r)
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
