package relay

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stageview/internal/config"
)

func TestNew_ValidatesURL(t *testing.T) {
	t.Parallel()

	_, err := New(config.Relay{URL: "not-a-url"})
	require.Error(t, err)

	_, err = New(config.Relay{URL: "http://localhost:3000/socket.io", Timeout: "not-a-duration"})
	require.Error(t, err)

	r, err := New(config.Relay{URL: "http://localhost:3000/socket.io", Namespace: "/viewer", Timeout: "5s"})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", r.baseURL)
	require.Equal(t, "/socket.io", r.path)
	require.Equal(t, "/viewer", r.namespace)
}

func TestNewChangePayload(t *testing.T) {
	t.Parallel()

	p := NewChangePayload("progress", []any{25, 0})
	require.Equal(t, ChangePayload{Field: "progress", Value: 25, Previous: 0}, p)

	// A malformed dispatch with fewer arguments must not panic.
	p = NewChangePayload("progress", []any{25})
	require.Equal(t, ChangePayload{Field: "progress", Value: 25}, p)

	p = NewChangePayload("progress", nil)
	require.Equal(t, ChangePayload{Field: "progress"}, p)
}
