package scene

import "context"

// Noop is an Engine that accepts everything and renders nothing. It backs
// headless runs of the bootstrap, where only load orchestration matters.
type Noop struct{}

type noopEntity struct {
	name string
	rot  [3]float64
}

func (e *noopEntity) Name() string               { return e.name }
func (e *noopEntity) SetRotation(deg [3]float64) { e.rot = deg }

type noopTexture struct {
	name string
}

func (t *noopTexture) Name() string { return t.name }

func (Noop) CreateModel(_ context.Context, src ModelSource, _ MaterialOptions) (Entity, error) {
	return &noopEntity{name: src.Name}, nil
}

func (Noop) AttachToRoot(Entity) error { return nil }

func (Noop) CreateTexture(_ context.Context, name string, _ []byte, _ TextureOptions) (Texture, error) {
	return &noopTexture{name: name}, nil
}

func (Noop) ApplySkybox(context.Context, Texture, SkyboxParams) error { return nil }
