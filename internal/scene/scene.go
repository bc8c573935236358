// Package scene defines the narrow surface through which the bootstrap core
// talks to the rendering engine. The engine's internals (instantiation,
// camera, cubemap conversion) live outside this module; the core only needs
// to create entities and textures and to apply the skybox environment.
package scene

import "context"

// WrapMode selects texture addressing outside [0,1].
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// TextureOptions carries the sampling and encoding hints for a texture
// resource. The zero value is deliberately not a useful default; loaders
// fill every field from their descriptor.
type TextureOptions struct {
	Mipmaps  bool
	WrapU    WrapMode
	WrapV    WrapMode
	Encoding string
}

// MaterialOptions carries the render-material hints applied to a freshly
// instantiated model.
type MaterialOptions struct {
	// Aggregate marks the model as a multi-level-of-detail aggregate.
	Aggregate bool
	// Antialias enables material-level antialiasing.
	Antialias bool
	// AlphaClip is the alpha-test reference value.
	AlphaClip float64
}

// SkyboxParams are the scene-level projection parameters applied together
// with an environment texture.
type SkyboxParams struct {
	Projection string
	Scale      float64
	Center     [3]float64
}

// Level is one level-of-detail entry of an aggregate model.
type Level struct {
	URL  string
	Size int64
}

// ModelSource is the fully prepared input for model instantiation: either
// raw bytes or an ordered list of level-of-detail references.
type ModelSource struct {
	Name      string
	Data      []byte
	Aggregate bool
	Levels    []Level
}

// Entity is an opaque handle to an instantiated scene object.
type Entity interface {
	// Name identifies the entity for logging.
	Name() string
	// SetRotation orients the entity, in degrees per axis.
	SetRotation(deg [3]float64)
}

// Texture is an opaque handle to a loaded texture resource.
type Texture interface {
	Name() string
}

// Engine is the rendering collaborator.
type Engine interface {
	// CreateModel instantiates a model and returns its entity handle.
	CreateModel(ctx context.Context, src ModelSource, opts MaterialOptions) (Entity, error)

	// AttachToRoot parents the entity to the scene root.
	AttachToRoot(e Entity) error

	// CreateTexture builds a texture resource from encoded image bytes.
	CreateTexture(ctx context.Context, name string, data []byte, opts TextureOptions) (Texture, error)

	// ApplySkybox derives the skybox cubemap and lighting atlas from the
	// texture and applies the scene-level projection parameters.
	ApplySkybox(ctx context.Context, tex Texture, params SkyboxParams) error
}
