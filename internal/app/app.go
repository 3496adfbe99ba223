package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eagl/console/internal/store"
	"github.com/eagl/console/pkg/apiclient"
	"github.com/eagl/console/pkg/consoleapi"
	"github.com/eagl/console/pkg/cryptox"
	"github.com/eagl/console/pkg/guard"
	"github.com/eagl/console/pkg/session"
	"github.com/eagl/console/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application holds the wired console client.
type Application struct {
	Config Config
	Logger *slog.Logger

	API     *apiclient.Client
	Store   store.Store
	Session *session.Manager
	Console *consoleapi.Client
	Router  *guard.Router

	// Runtime is the runtime config document applied at startup, if any.
	Runtime apiclient.RuntimeConfig
}

// New wires every dependency. The persisted session is not loaded yet; call
// Start for that.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		Config: cfg,
		Logger: slogx.New(slogx.Config{
			Service: "eagl",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
		Router: guard.NewConsoleRouter(),
	}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	app.initAPI(ctx)

	app.Session = session.NewManager(
		session.NewAPIAuthenticator(app.API),
		app.Store,
		session.WithLogger(app.Logger.With("component", "session")),
		session.WithSoftTransportFailure(cfg.SoftRefresh),
		session.WithRequestTimeout(cfg.HTTPTimeout),
	)
	app.Console = consoleapi.New(app.API, app.Session)

	return app, nil
}

// initStore opens the configured driver, sealing records when a master key
// is configured.
func (app *Application) initStore(ctx context.Context) error {
	var sealer *cryptox.Sealer
	if app.Config.Sealed() {
		material, err := cryptox.LoadKeyMaterial(app.Config.MasterKeyPath, app.Config.MasterKey)
		if err != nil {
			return fmt.Errorf("failed to load master key: %w", err)
		}
		if sealer, err = cryptox.NewSealer(material); err != nil {
			return fmt.Errorf("failed to initialize sealer: %w", err)
		}
	}

	s, err := store.Open(ctx, store.Options{
		Driver: app.Config.Store,
		Path:   app.Config.StorePath,
		Sealer: sealer,
	})
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	app.Store = s

	app.Logger.Debug("session store ready",
		"driver", app.Config.Store,
		"path", app.Config.StorePath,
		"sealed", sealer != nil,
	)
	return nil
}

// initAPI builds the API client and applies the runtime config document. A
// document that can't be loaded is logged and skipped so the environment
// base and the local default still apply.
func (app *Application) initAPI(ctx context.Context) {
	app.API = apiclient.New(
		apiclient.WithEnvBase(app.Config.EnvBase()),
		apiclient.WithTimeout(app.Config.HTTPTimeout),
		apiclient.WithRateLimit(app.Config.RateLimit, app.Config.RateBurst),
		apiclient.WithLogger(app.Logger.With("component", "api")),
		apiclient.WithUserAgent("eagl/"+BuildVersion),
	)

	if app.Config.RuntimeConfig == "" {
		return
	}

	rc, err := apiclient.LoadRuntimeConfig(ctx, app.Config.RuntimeConfig, app.API.HTTPClient)
	if err != nil {
		app.Logger.Warn("runtime config unavailable, using environment base", "source", app.Config.RuntimeConfig, "err", err)
		return
	}
	app.Runtime = rc
	app.API.ApplyRuntimeConfig(rc)
}

// Start restores the persisted session and waits for its revalidation.
func (app *Application) Start(ctx context.Context) session.Snapshot {
	ctx = slogx.WithContext(ctx, app.Logger.With("component", "startup"))
	return <-app.Session.Start(ctx)
}

// Close releases the session store.
func (app *Application) Close() error {
	if app.Store == nil {
		return nil
	}
	return app.Store.Close()
}
