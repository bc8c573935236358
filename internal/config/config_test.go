package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	m := &Model{}
	require.Error(t, m.Validate(), "a model with no content source is not runnable")

	m.Content.SourceURL = "https://assets.example.com/robot.glb"
	require.NoError(t, m.Validate())

	m.Relay = &Relay{}
	require.Error(t, m.Validate(), "a configured relay needs a URL")

	m.Relay.URL = "http://localhost:3000/socket.io"
	require.NoError(t, m.Validate())
}

func TestMerge_NonZeroFieldsWin(t *testing.T) {
	t.Parallel()

	scale := 120.0
	base := &Model{
		Content:  Content{SourceURL: "https://a/old.glb", Antialias: true},
		Skybox:   Skybox{URL: "https://a/env.jpg"},
		Settings: Settings{SkyboxProjection: "dome"},
	}
	overlay := &Model{
		Content: Content{SourceURL: "https://b/new.glb", Filename: "new.glb"},
		Skybox:  Skybox{Scale: &scale},
	}

	base.Merge(overlay)

	want := &Model{
		Content:  Content{SourceURL: "https://b/new.glb", Filename: "new.glb", Antialias: true},
		Skybox:   Skybox{URL: "https://a/env.jpg", Scale: &scale},
		Settings: Settings{SkyboxProjection: "dome"},
	}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Fatalf("merged model mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_NilOverlayIsNoOp(t *testing.T) {
	t.Parallel()

	base := &Model{Content: Content{SourceURL: "https://a/x.glb"}}
	base.Merge(nil)
	require.Equal(t, "https://a/x.glb", base.Content.SourceURL)
}
