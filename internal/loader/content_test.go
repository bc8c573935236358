package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stageview/internal/scene"
)

// serveBytes returns a test server that serves body at any path, with a
// declared Content-Length so progress has a byte total to work against.
func serveBytes(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestContentLoad_FetchInstantiateAttach(t *testing.T) {
	t.Parallel()

	body := []byte("glb-bytes-glb-bytes-glb-bytes")
	srv := serveBytes(t, body)
	engine := &scene.Fake{}
	l := NewContent(engine, srv.Client())

	desc := NewContentDescriptor(srv.URL+"/robot.glb", "robot.glb")
	desc.Antialias = true

	var reported []int
	entity, err := l.Load(context.Background(), desc, func(pct int) {
		reported = append(reported, pct)
	})
	require.NoError(t, err)
	require.NotNil(t, entity)

	// Progress ended at 100 and only ever increased.
	require.NotEmpty(t, reported)
	require.Equal(t, 100, reported[len(reported)-1])
	for i := 1; i < len(reported); i++ {
		require.Greater(t, reported[i], reported[i-1])
	}

	// The engine saw the raw buffer with the descriptor's material hints.
	require.Len(t, engine.Models, 1)
	call := engine.Models[0]
	require.Equal(t, "robot.glb", call.Src.Name)
	require.Equal(t, body, call.Src.Data)
	require.False(t, call.Src.Aggregate)
	require.True(t, call.Opts.Antialias)
	require.InDelta(t, 1.0/255, call.Opts.AlphaClip, 1e-12)

	// The entity was oriented with the fixed default rotation and attached.
	fe, ok := entity.(*scene.FakeEntity)
	require.True(t, ok)
	require.Equal(t, DefaultRotation, fe.Rotation)
	require.Len(t, engine.Attached, 1)
	require.Same(t, entity, engine.Attached[0])
}

func TestContentLoad_ManifestFilenameDeserializesMetadata(t *testing.T) {
	t.Parallel()

	manifest := []byte(`{
		"name": "city-block",
		"lods": [
			{"url": "https://cdn.example.com/city-lod0.bin", "size": 1024},
			{"url": "https://cdn.example.com/city-lod1.bin", "size": 4096}
		]
	}`)
	engine := &scene.Fake{}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", ManifestFilename)
	desc.Data = manifest

	_, err := l.Load(context.Background(), desc, nil)
	require.NoError(t, err)

	require.Len(t, engine.Models, 1)
	src := engine.Models[0].Src
	require.Equal(t, "city-block", src.Name)
	require.True(t, src.Aggregate, "manifest content is aggregate by definition")
	require.Empty(t, src.Data, "manifest content carries level references, not raw bytes")
	require.Equal(t, []scene.Level{
		{URL: "https://cdn.example.com/city-lod0.bin", Size: 1024},
		{URL: "https://cdn.example.com/city-lod1.bin", Size: 4096},
	}, src.Levels)
	require.True(t, engine.Models[0].Opts.Aggregate)
}

func TestContentLoad_OtherFilenameUsesBufferVerbatim(t *testing.T) {
	t.Parallel()

	// Even JSON-shaped bytes pass through untouched under a non-reserved name.
	body := []byte(`{"name":"not-a-manifest"}`)
	engine := &scene.Fake{}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", "model.json")
	desc.Data = body

	_, err := l.Load(context.Background(), desc, nil)
	require.NoError(t, err)
	require.Len(t, engine.Models, 1)
	require.Equal(t, body, engine.Models[0].Src.Data)
	require.False(t, engine.Models[0].Src.Aggregate)
}

func TestContentLoad_ForceAggregateOverride(t *testing.T) {
	t.Parallel()

	engine := &scene.Fake{}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", "clustered.bin")
	desc.Data = []byte{0x01, 0x02}
	desc.ForceAggregate = true

	_, err := l.Load(context.Background(), desc, nil)
	require.NoError(t, err)
	require.True(t, engine.Models[0].Src.Aggregate)
	require.True(t, engine.Models[0].Opts.Aggregate)
}

func TestContentLoad_BufferReportsSingleHundred(t *testing.T) {
	t.Parallel()

	engine := &scene.Fake{}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", "inline.glb")
	desc.Data = []byte("already here")

	var reported []int
	_, err := l.Load(context.Background(), desc, func(pct int) {
		reported = append(reported, pct)
	})
	require.NoError(t, err)
	require.Equal(t, []int{100}, reported)
}

func TestContentLoad_FetchErrorRejects(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	engine := &scene.Fake{}
	l := NewContent(engine, srv.Client())

	_, err := l.Load(context.Background(), NewContentDescriptor(srv.URL+"/missing.glb", ""), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
	require.Empty(t, engine.Models, "nothing may be instantiated after a failed fetch")
}

func TestContentLoad_BadManifestRejects(t *testing.T) {
	t.Parallel()

	engine := &scene.Fake{}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", ManifestFilename)
	desc.Data = []byte("{not json")

	_, err := l.Load(context.Background(), desc, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest")
}

func TestContentLoad_InstantiationErrorRejects(t *testing.T) {
	t.Parallel()

	engine := &scene.Fake{CreateModelErr: context.DeadlineExceeded}
	l := NewContent(engine, NewClient())

	desc := NewContentDescriptor("", "robot.glb")
	desc.Data = []byte("bytes")

	_, err := l.Load(context.Background(), desc, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to instantiate")
}
