package scene

import (
	"context"
	"sync"
)

// Fake is a recording Engine for tests. Every call is captured; any of the
// error fields, when set, makes the corresponding call fail.
type Fake struct {
	mu sync.Mutex

	CreateModelErr   error
	CreateTextureErr error
	ApplySkyboxErr   error

	Models   []FakeModelCall
	Attached []Entity
	Textures []FakeTextureCall
	Skyboxes []FakeSkyboxCall
}

// FakeModelCall records one CreateModel invocation.
type FakeModelCall struct {
	Src  ModelSource
	Opts MaterialOptions
}

// FakeTextureCall records one CreateTexture invocation.
type FakeTextureCall struct {
	Name string
	Data []byte
	Opts TextureOptions
}

// FakeSkyboxCall records one ApplySkybox invocation.
type FakeSkyboxCall struct {
	Texture Texture
	Params  SkyboxParams
}

// FakeEntity is the entity handle Fake returns; it records its rotation.
type FakeEntity struct {
	EntityName string
	Rotation   [3]float64
}

func (e *FakeEntity) Name() string               { return e.EntityName }
func (e *FakeEntity) SetRotation(deg [3]float64) { e.Rotation = deg }

// FakeTexture is the texture handle Fake returns.
type FakeTexture struct {
	TextureName string
}

func (t *FakeTexture) Name() string { return t.TextureName }

func (f *Fake) CreateModel(_ context.Context, src ModelSource, opts MaterialOptions) (Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateModelErr != nil {
		return nil, f.CreateModelErr
	}
	f.Models = append(f.Models, FakeModelCall{Src: src, Opts: opts})
	return &FakeEntity{EntityName: src.Name}, nil
}

func (f *Fake) AttachToRoot(e Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Attached = append(f.Attached, e)
	return nil
}

func (f *Fake) CreateTexture(_ context.Context, name string, data []byte, opts TextureOptions) (Texture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateTextureErr != nil {
		return nil, f.CreateTextureErr
	}
	f.Textures = append(f.Textures, FakeTextureCall{Name: name, Data: data, Opts: opts})
	return &FakeTexture{TextureName: name}, nil
}

func (f *Fake) ApplySkybox(_ context.Context, tex Texture, params SkyboxParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ApplySkyboxErr != nil {
		return f.ApplySkyboxErr
	}
	f.Skyboxes = append(f.Skyboxes, FakeSkyboxCall{Texture: tex, Params: params})
	return nil
}
