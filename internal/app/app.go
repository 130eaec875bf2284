// Package app implements the application layer for sheaf.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/sheaf/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/adapters/evaluator"  //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/adapters/httpserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/sheaf/internal/engine/aggregate"
	"go.trai.ch/sheaf/internal/engine/freshness"
	"go.trai.ch/sheaf/internal/engine/minify"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	logger         ports.Logger
	tracer         ports.Tracer
	watcher        ports.Watcher
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer, w ports.Watcher) *App {
	return &App{
		configLoader:   loader,
		logger:         log,
		tracer:         tracer,
		watcher:        w,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow overrides how long file changes are coalesced before invalidation.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// Options are the settings shared by every command.
// Non-zero values override the configuration file.
type Options struct {
	ConfigPath string
	Dir        string
	JSON       bool
	Verbose    bool
}

// ServeOptions configures the Serve method.
type ServeOptions struct {
	Addr  string
	Watch bool
}

// logSettings is implemented by loggers whose output format can change at runtime.
type logSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Serve runs the HTTP server until ctx is canceled.
func (a *App) Serve(ctx context.Context, opts Options, serveOpts ServeOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if serveOpts.Addr != "" {
		cfg.Addr = serveOpts.Addr
	}
	if serveOpts.Watch {
		cfg.Watch = true
	}

	shutdown := telemetry.Setup(telemetry.NewBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	engine, err := a.assemble(cfg)
	if err != nil {
		return err
	}

	server := httpserver.NewServer(httpserver.NewHandler(engine, a.logger), a.logger, cfg.Compress)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Watch {
		if err := a.watcher.Start(ctx, cfg.Root); err != nil {
			return err
		}
		defer func() {
			_ = a.watcher.Stop()
		}()
		a.logger.Info("watching for changes", "dir", cfg.Root)

		debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
			a.invalidate(engine, paths)
		})
		g.Go(func() error {
			for event := range a.watcher.Events() {
				a.logger.Debug("fragment changed", "path", event.Path)
				debouncer.Add(event.Path)
			}
			debouncer.Flush()
			return nil
		})
	}

	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.Addr)
	})

	return g.Wait()
}

// Build writes the stylesheet for selector to w, going through the artifact cache.
func (a *App) Build(ctx context.Context, opts Options, selector string, w io.Writer) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	shutdown := telemetry.Setup(telemetry.NewBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	engine, err := a.assemble(cfg)
	if err != nil {
		return err
	}

	resp, err := engine.Serve(ctx, domain.Request{Selector: domain.ParseSelector(selector)})
	if err != nil {
		return err
	}
	a.logger.Debug("built stylesheet", "key", resp.Key, "outcome", resp.Outcome.String())

	if _, err := w.Write(resp.Body); err != nil {
		return zerr.Wrap(err, "failed to write stylesheet")
	}
	return nil
}

// Clean removes the artifact cache directory.
func (a *App) Clean(_ context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	store := cas.NewStore(domain.CachePath(cfg.Root, cfg.CacheDir))
	a.logger.Info("removing artifact cache...", "dir", store.Dir())
	if err := store.Clear(); err != nil {
		return err
	}
	a.logger.Info("removed artifact cache")
	return nil
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(opts.Dir, domain.ConfigFileName)
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Dir != "" {
		cfg.Root = filepath.Clean(opts.Dir)
	}
	cfg.JSONLogs = cfg.JSONLogs || opts.JSON
	cfg.Verbose = cfg.Verbose || opts.Verbose

	if l, ok := a.logger.(logSettings); ok {
		l.SetJSON(cfg.JSONLogs)
		l.SetVerbose(cfg.Verbose)
	}

	return cfg, nil
}

// assemble builds the request pipeline for cfg.
func (a *App) assemble(cfg *domain.Config) (*freshness.Engine, error) {
	keyer, err := fs.NewKeyDeriver(cfg.KeyStrategy)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(cfg.Root)
	store := cas.NewStore(domain.CachePath(cfg.Root, cfg.CacheDir))
	aggregator := aggregate.New(fsys, evaluator.New(cfg.LeftDelim, cfg.RightDelim), minify.New())

	engine := freshness.New(freshness.Deps{
		Lister:     fs.NewLister(fsys, cfg.ConfigSource),
		Resolver:   fs.NewResolver(cfg.Policy),
		Keyer:      keyer,
		Store:      store,
		Aggregator: aggregator,
		Tracer:     a.tracer,
		Logger:     a.logger,
	}, cfg.Defaults)

	return engine, nil
}

func (a *App) invalidate(engine *freshness.Engine, paths []string) {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}

	keys, err := engine.Invalidate(names)
	if len(keys) > 0 {
		a.logger.Info("invalidated artifacts", "keys", keys)
	}
	if err != nil {
		a.logger.Error(err)
	}
}
