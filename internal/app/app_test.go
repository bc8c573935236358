package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stageview/internal/eventbus"
	hclloader "github.com/vk/stageview/internal/hcl"
	"github.com/vk/stageview/internal/scene"
	"github.com/vk/stageview/internal/state"
)

func writeViewerConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestNewAndRun_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	t.Cleanup(srv.Close)

	configPath := writeViewerConfig(t, fmt.Sprintf(`
		content {
			url  = %q
			file = "robot.glb"
		}
		skybox {
			url = %q
		}
	`, srv.URL+"/robot.glb", srv.URL+"/env.jpg"))

	out := &bytes.Buffer{}
	engine := &scene.Fake{}
	appConfig, err := NewConfig(Config{ConfigPath: configPath, LogLevel: "debug"})
	require.NoError(t, err)

	a := New(out, appConfig, hclloader.NewLoader(), engine)
	require.NoError(t, a.Run(context.Background(), appConfig))

	require.Len(t, engine.Models, 1)
	require.Len(t, engine.Skyboxes, 1)
	require.Contains(t, out.String(), "Content ready.")
}

func TestNew_CLIOverridesWinOverFile(t *testing.T) {
	t.Parallel()

	configPath := writeViewerConfig(t, `
		content {
			url = "https://assets.example.com/from-file.glb"
		}
	`)

	appConfig, err := NewConfig(Config{
		ConfigPath: configPath,
		ContentURL: "https://assets.example.com/from-cli.glb",
		SkyboxURL:  "https://assets.example.com/from-cli-env.jpg",
	})
	require.NoError(t, err)

	a := New(&bytes.Buffer{}, appConfig, hclloader.NewLoader(), scene.Noop{})
	require.Equal(t, "https://assets.example.com/from-cli.glb", a.Model().Content.SourceURL)
	require.Equal(t, "https://assets.example.com/from-cli-env.jpg", a.Model().Skybox.URL)
}

func TestNew_PanicsOnBrokenConfig(t *testing.T) {
	t.Parallel()

	configPath := writeViewerConfig(t, `content { url = `)
	appConfig, err := NewConfig(Config{ConfigPath: configPath})
	require.NoError(t, err)

	require.Panics(t, func() {
		New(&bytes.Buffer{}, appConfig, hclloader.NewLoader(), scene.Noop{})
	})
}

func TestNewConfig_RequiresASource(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{ContentURL: "https://a/x.glb"})
	require.NoError(t, err)
}

func TestRun_ContentFailureSetsErrorState(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	appConfig, err := NewConfig(Config{ContentURL: srv.URL + "/missing.glb"})
	require.NoError(t, err)

	a := New(&bytes.Buffer{}, appConfig, hclloader.NewLoader(), &scene.Fake{})
	runErr := a.Run(context.Background(), appConfig)
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "content load failed")
}

func TestStateHandler_ServesSnapshot(t *testing.T) {
	t.Parallel()

	logger := newLogger("info", "text", &bytes.Buffer{})
	st := state.New(state.Default(), eventbus.New(), logger)

	rec := httptest.NewRecorder()
	stateHandler(st)(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, "desktop", snap["inputMode"])
	require.Equal(t, 0.0, snap["progress"], "JSON numbers decode as float64")
}
