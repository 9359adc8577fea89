// Package app wires together services, the source registry, and the
// application lifecycle.
package app

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/config"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/feed"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/log"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/pubsub"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/update"
	"github.com/yousefs-portfolio/devops-dash-sub001/internal/version"
	"golang.org/x/sync/errgroup"
)

// feedSeedCount is how many synthetic items the feed starts with.
const feedSeedCount = 120

// ConfigReloadedMsg is sent to the TUI when the configuration file changed
// on disk and was reloaded successfully.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type App struct {
	Feed feed.Service

	config *config.Config

	serviceEventsWG *sync.WaitGroup
	eventsCtx       context.Context
	events          chan tea.Msg
	tuiWG           *sync.WaitGroup

	sourcesEG *errgroup.Group

	// global context and cleanup functions
	globalCtx    context.Context
	cleanupFuncs []func() error
}

// New initializes a new application instance.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Feed:   feed.NewService(),
		config: cfg,

		globalCtx: ctx,

		events:          make(chan tea.Msg, 100),
		serviceEventsWG: &sync.WaitGroup{},
		tuiWG:           &sync.WaitGroup{},
		sourcesEG:       &errgroup.Group{},
	}

	app.Feed.Seed(feed.Fixtures(feedSeedCount))
	app.setupEvents()

	sourcesCtx, cancelSources := context.WithCancel(ctx)
	app.initSources(sourcesCtx)
	app.cleanupFuncs = append(app.cleanupFuncs, func() error {
		cancelSources()
		return app.sourcesEG.Wait()
	})

	app.setupHotReload()
	go app.checkForUpdates(ctx)

	return app, nil
}

// checkForUpdates asks GitHub for the latest release and notifies the TUI
// when a newer one exists. DEVOPS_DASH_DISABLE_UPDATE_CHECK skips the check.
func (app *App) checkForUpdates(ctx context.Context) {
	if skip, _ := strconv.ParseBool(os.Getenv("DEVOPS_DASH_DISABLE_UPDATE_CHECK")); skip {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	info, err := update.Check(ctx, version.Version, update.Default)
	if err != nil {
		slog.Debug("Update check failed", "error", err)
		return
	}
	if !info.Available() {
		return
	}
	select {
	case app.events <- pubsub.UpdateAvailableMsg{
		CurrentVersion: info.Current,
		LatestVersion:  info.Latest,
		IsDevelopment:  info.IsDevelopment(),
	}:
	case <-ctx.Done():
	}
}

// Config returns the application configuration.
func (app *App) Config() *config.Config {
	return app.config
}

func (app *App) setupEvents() {
	ctx, cancel := context.WithCancel(app.globalCtx)
	app.eventsCtx = ctx
	setupSubscriber(ctx, app.serviceEventsWG, "feed", app.Feed.Subscribe, app.events)
	setupSubscriber(ctx, app.serviceEventsWG, "sources", SubscribeSourceEvents, app.events)
	setupSubscriber(ctx, app.serviceEventsWG, "lines", SubscribeLogLines, app.events)
	cleanupFunc := func() error {
		cancel()
		app.serviceEventsWG.Wait()
		return nil
	}
	app.cleanupFuncs = append(app.cleanupFuncs, cleanupFunc)
}

func setupSubscriber[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	subscriber func(context.Context) <-chan pubsub.Event[T],
	outputCh chan<- tea.Msg,
) {
	wg.Go(func() {
		subCh := subscriber(ctx)
		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					slog.Debug("subscription channel closed", "name", name)
					return
				}
				var msg tea.Msg = event
				select {
				case outputCh <- msg:
				case <-time.After(2 * time.Second):
					slog.Warn("message dropped due to slow consumer", "name", name)
				case <-ctx.Done():
					slog.Debug("subscription cancelled", "name", name)
					return
				}
			case <-ctx.Done():
				slog.Debug("subscription cancelled", "name", name)
				return
			}
		}
	})
}

// setupHotReload watches the project config file and forwards reloads to
// the TUI. Missing watch support is not fatal.
func (app *App) setupHotReload() {
	path := config.ProjectConfigPath(app.config.WorkingDir())
	hr, err := config.NewHotReloader(path, app.config.WorkingDir(), app.config.Options.DataDirectory)
	if err != nil {
		slog.Warn("Config hot reload unavailable", "error", err)
		return
	}
	hr.SetConfig(app.config)
	hr.AddCallback(config.OnSourcesChanged())
	hr.AddCallback(config.OnVirtualizationChanged())
	hr.AddCallback(func(cfg *config.Config) error {
		select {
		case app.events <- ConfigReloadedMsg{Config: cfg}:
		default:
			slog.Warn("Dropped config reload notification, event queue full")
		}
		return nil
	})
	if err := hr.Start(); err != nil {
		slog.Warn("Failed to start config hot reloader", "error", err)
		_ = hr.Stop()
		return
	}
	app.cleanupFuncs = append(app.cleanupFuncs, hr.Stop)
}

// Subscribe sends events to the TUI as tea.Msgs.
func (app *App) Subscribe(program *tea.Program) {
	defer log.RecoverPanic("app.Subscribe", func() {
		slog.Info("TUI subscription panic: attempting graceful shutdown")
		program.Quit()
	})

	app.tuiWG.Add(1)
	tuiCtx, tuiCancel := context.WithCancel(app.globalCtx)
	app.cleanupFuncs = append(app.cleanupFuncs, func() error {
		slog.Debug("Cancelling TUI message handler")
		tuiCancel()
		app.tuiWG.Wait()
		return nil
	})
	defer app.tuiWG.Done()

	for {
		select {
		case <-tuiCtx.Done():
			slog.Debug("TUI message handler shutting down")
			return
		case msg, ok := <-app.events:
			if !ok {
				slog.Debug("TUI message channel closed")
				return
			}
			program.Send(msg)
		}
	}
}

// Shutdown performs a graceful shutdown of the application.
func (app *App) Shutdown() {
	app.Feed.Shutdown()

	for _, cleanup := range app.cleanupFuncs {
		if cleanup != nil {
			if err := cleanup(); err != nil {
				slog.Error("Failed to cleanup app properly on shutdown", "error", err)
			}
		}
	}
}
