package app

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nxadm/tail"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/fsext"
)

const (
	// selfSourceName labels the implicit tail of the application's own log.
	selfSourceName = "devops-dash"

	// feedInterval paces the synthetic feed generator.
	feedInterval = 5 * time.Second
)

// initSources starts the configured sources plus the implicit tail of the
// application's own log file.
func (app *App) initSources(ctx context.Context) {
	enabled := app.config.EnabledSources()

	hasFeed := false
	for _, src := range enabled {
		switch src.Source.Type {
		case config.SourceTypeFeed:
			hasFeed = true
		default:
			app.startFileSource(ctx, src.Name, src.Source)
		}
	}
	if hasFeed {
		app.Feed.Start(ctx, feedInterval)
	}

	if _, taken := app.config.Sources[selfSourceName]; !taken {
		app.startTail(ctx, selfSourceName, app.config.LogFilePath())
	}

	slog.Info("Sources started", "configured", len(enabled), "feed", hasFeed)
}

// startFileSource resolves the configured path, expanding globs to the most
// recently modified match, and starts tailing it.
func (app *App) startFileSource(ctx context.Context, name string, src config.SourceConfig) {
	path := src.ResolvedPath()
	if path == "" {
		updateSourceState(name, SourceError, errors.New("source has no path"), "", 0)
		return
	}
	if isGlob(path) {
		resolved, err := expandGlob(path)
		if err != nil {
			updateSourceState(name, SourceError, err, path, 0)
			return
		}
		if resolved == "" {
			// TODO: re-glob periodically so files created later get picked up.
			slog.Warn("No files match source glob", "name", name, "pattern", path)
			updateSourceState(name, SourceWaiting, nil, path, 0)
			return
		}
		path = resolved
	}
	app.startTail(ctx, name, path)
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// expandGlob resolves a doublestar pattern to the most recently modified
// match, or "" when nothing matches yet.
func expandGlob(pattern string) (string, error) {
	base, pat := doublestar.SplitPattern(filepath.ToSlash(pattern))
	matches, _, err := fsext.GlobWithDoubleStar(pat, base, 1)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

// startTail hands a tail goroutine to the sources group.
func (app *App) startTail(ctx context.Context, name, path string) {
	updateSourceState(name, SourceStarting, nil, path, 0)
	app.sourcesEG.Go(func() error {
		return app.tailSource(ctx, name, path)
	})
}

// tailSource follows path until ctx is done, publishing every line read.
// Failures land in the source registry instead of failing the group, so one
// broken source does not stop the others.
func (app *App) tailSource(ctx context.Context, name, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		slog.Error("Failed to tail source", "name", name, "path", path, "error", err)
		updateSourceState(name, SourceError, err, path, 0)
		return nil
	}
	defer t.Cleanup()

	updateSourceState(name, SourceTailing, nil, path, 0)
	slog.Info("Tailing source", "name", name, "path", path)

	lines := 0
	for {
		select {
		case <-ctx.Done():
			if err := t.Stop(); err != nil {
				slog.Debug("Failed to stop tail", "name", name, "error", err)
			}
			updateSourceState(name, SourceStopped, nil, path, lines)
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				updateSourceState(name, SourceStopped, nil, path, lines)
				return nil
			}
			if line.Err != nil {
				updateSourceState(name, SourceError, line.Err, path, lines)
				continue
			}
			lines++
			publishLogLine(LogLine{
				Source: name,
				Number: lines,
				Text:   strings.TrimSuffix(line.Text, "\r"),
				Time:   line.Time,
			})
			updateSourceLines(name, lines)
		}
	}
}
