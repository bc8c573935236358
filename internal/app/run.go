package app

import (
	"context"
	"fmt"

	"github.com/vk/stageview/internal/boot"
	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/relay"
)

// Run executes the bootstrap: it starts the loads, wires the optional status
// server and presentation relay, and then consumes the load handles. The
// content load decides the exit status; the skybox load is best-effort and
// only logged when it fails.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	handoff := boot.Bootstrap(ctx, a.config, a.engine, nil)

	if appConfig.StatusPort > 0 {
		a.startStatusServer(appConfig.StatusPort, handoff.State)
	}

	if a.config.Relay != nil {
		r, err := relay.New(*a.config.Relay)
		if err != nil {
			return fmt.Errorf("invalid relay configuration: %w", err)
		}
		if err := r.Start(ctx, handoff.Bus, handoff.State); err != nil {
			// The viewer keeps working without its bridge.
			a.logger.Error("Presentation relay failed to start.", "error", err)
		} else {
			defer r.Close()
		}
	}

	entity, err := handoff.Content.Await(ctx)
	if err != nil {
		handoff.State.Set("error", err.Error())
		return fmt.Errorf("content load failed: %w", err)
	}
	handoff.State.Set("loaded", true)
	a.logger.Info("Content ready.", "entity", entity.Name())

	if handoff.Skybox != nil {
		if _, err := handoff.Skybox.Await(ctx); err != nil {
			a.logger.Warn("Skybox load failed, continuing without environment.", "error", err)
		} else {
			a.logger.Info("Skybox applied.")
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
