package loader

import (
	"context"
	"net/http"
	"path"

	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/scene"
)

// Skybox loads an equirectangular environment image and resolves with the
// raw texture handle. Deriving the cubemap and applying scene projection are
// the orchestrator's continuation, not part of the load.
type Skybox struct {
	engine scene.Engine
	client *http.Client
}

// NewSkybox builds a skybox loader on top of the given engine and HTTP
// client.
func NewSkybox(engine scene.Engine, client *http.Client) *Skybox {
	return &Skybox{engine: engine, client: client}
}

// Load fetches the environment image and builds its texture resource with
// the descriptor's fixed sampling options. Failures are logged and returned.
func (l *Skybox) Load(ctx context.Context, desc SkyboxDescriptor) (scene.Texture, error) {
	name := path.Base(desc.URL)
	logger := ctxlog.FromContext(ctx).With("resource", name)
	logger.Debug("Skybox load started.", "url", desc.URL)

	data, err := fetch(ctx, l.client, desc.URL, nil)
	if err != nil {
		logger.Error("Skybox fetch failed.", "url", desc.URL, "error", err)
		return nil, err
	}

	tex, err := l.engine.CreateTexture(ctx, name, data, desc.Options)
	if err != nil {
		logger.Error("Skybox texture creation failed.", "error", err)
		return nil, err
	}

	logger.Debug("Skybox load finished.")
	return tex, nil
}
