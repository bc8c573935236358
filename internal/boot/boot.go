// Package boot composes startup: it builds the event bus and the observable
// state container, starts the content and skybox loads as independent
// asynchronous operations, wires content progress into state, and hands the
// still-pending load handles to the presentation layer.
package boot

import (
	"context"
	"net/http"

	"github.com/vk/stageview/internal/config"
	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/eventbus"
	"github.com/vk/stageview/internal/loader"
	"github.com/vk/stageview/internal/scene"
	"github.com/vk/stageview/internal/state"
	"github.com/vk/stageview/internal/task"
)

// Built-in skybox defaults, the lowest precedence step.
const (
	DefaultProjection = "box"
	DefaultScale      = 200.0
)

// DefaultCenter is the built-in skybox center offset.
var DefaultCenter = [3]float64{0, 0, 0}

// Handoff is everything the presentation layer needs: the state container,
// its bus, and both in-flight load handles. Neither handle has been awaited;
// consumption, error display and the "ready" transition belong downstream.
// Skybox is nil when no skybox URL resolved.
type Handoff struct {
	State   *state.Container
	Bus     *eventbus.Bus
	Content *task.Handle[scene.Entity]
	Skybox  *task.Handle[scene.Texture]
}

// SkyboxPlan is the effective skybox configuration after precedence
// resolution. An empty URL means no skybox load starts.
type SkyboxPlan struct {
	URL    string
	Params scene.SkyboxParams
}

// ResolveSkybox applies the precedence rule per field: explicit config
// value, else settings default, else built-in.
func ResolveSkybox(cfg *config.Model) SkyboxPlan {
	plan := SkyboxPlan{
		URL: cfg.Skybox.URL,
		Params: scene.SkyboxParams{
			Projection: DefaultProjection,
			Scale:      DefaultScale,
			Center:     DefaultCenter,
		},
	}
	if plan.URL == "" {
		plan.URL = cfg.Settings.SkyboxURL
	}

	switch {
	case cfg.Skybox.Projection != "":
		plan.Params.Projection = cfg.Skybox.Projection
	case cfg.Settings.SkyboxProjection != "":
		plan.Params.Projection = cfg.Settings.SkyboxProjection
	}
	switch {
	case cfg.Skybox.Scale != nil:
		plan.Params.Scale = *cfg.Skybox.Scale
	case cfg.Settings.SkyboxScale != nil:
		plan.Params.Scale = *cfg.Settings.SkyboxScale
	}
	switch {
	case cfg.Skybox.Center != nil:
		plan.Params.Center = *cfg.Skybox.Center
	case cfg.Settings.SkyboxCenter != nil:
		plan.Params.Center = *cfg.Settings.SkyboxCenter
	}
	return plan
}

// Bootstrap builds the state container and starts the loads. It returns
// immediately; the returned handles settle on their own goroutines.
//
// The skybox continuation (cubemap derivation and scene projection via
// Engine.ApplySkybox) runs inside the returned skybox handle, so a failure
// there is observable by whoever awaits it instead of being dropped.
func Bootstrap(ctx context.Context, cfg *config.Model, engine scene.Engine, client *http.Client) *Handoff {
	logger := ctxlog.FromContext(ctx)
	if client == nil {
		client = loader.NewClient()
	}

	bus := eventbus.New()
	st := state.New(state.Default(), bus, logger)

	contentDesc := loader.NewContentDescriptor(cfg.Content.SourceURL, cfg.Content.Filename)
	contentDesc.Data = cfg.Content.Data
	contentDesc.ForceAggregate = cfg.Content.ForceAggregate
	contentDesc.Antialias = cfg.Content.Antialias

	contentLoader := loader.NewContent(engine, client)
	content := task.Go(ctx, func(ctx context.Context) (scene.Entity, error) {
		return contentLoader.Load(ctx, contentDesc, func(pct int) {
			st.Set("progress", pct)
		})
	})

	var skybox *task.Handle[scene.Texture]
	if plan := ResolveSkybox(cfg); plan.URL != "" {
		skyboxLoader := loader.NewSkybox(engine, client)
		skybox = task.Go(ctx, func(ctx context.Context) (scene.Texture, error) {
			tex, err := skyboxLoader.Load(ctx, loader.NewSkyboxDescriptor(plan.URL))
			if err != nil {
				return nil, err
			}
			if err := engine.ApplySkybox(ctx, tex, plan.Params); err != nil {
				logger.Error("Applying skybox failed.", "url", plan.URL, "error", err)
				return nil, err
			}
			return tex, nil
		})
	} else {
		logger.Debug("No skybox URL resolved, skipping skybox load.")
	}

	return &Handoff{
		State:   st,
		Bus:     bus,
		Content: content,
		Skybox:  skybox,
	}
}
