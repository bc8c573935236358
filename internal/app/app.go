// Package app encapsulates the viewer bootstrap's dependencies,
// configuration and lifecycle: it builds the isolated logger, loads and
// layers configuration, runs the load orchestration and owns the optional
// status server and presentation relay.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/stageview/internal/config"
	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/scene"
)

// App is a fully initialized viewer bootstrap instance.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	engine scene.Engine
}

// New constructs the application. It returns a fully initialized App with
// its own isolated logger and merged configuration. A failure to load or
// validate configuration is a fatal startup error and panics; the CLI
// entrypoint recovers it into a clean exit.
func New(outW io.Writer, appConfig *Config, loader config.Loader, engine scene.Engine) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := &config.Model{}
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
		logger.Debug("Configuration loaded.", "path", appConfig.ConfigPath)
	}

	// CLI overrides are the last, highest-precedence layer.
	model.Merge(&config.Model{
		Content: config.Content{
			SourceURL: appConfig.ContentURL,
			Filename:  appConfig.ContentFile,
		},
		Skybox: config.Skybox{URL: appConfig.SkyboxURL},
	})

	if err := model.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}
	logger.Debug("Configuration validated.")

	if engine == nil {
		engine = scene.Noop{}
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: model,
		engine: engine,
	}
}

// Model returns the merged configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.config
}
