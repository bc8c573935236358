// Package config defines the format-agnostic configuration model for the
// viewer bootstrap, along with the Loader interface implemented by concrete
// formats. The model is the single source of truth for the boot package;
// precedence between explicit values, settings defaults and built-ins is
// resolved there, not here.
package config

import (
	"context"
	"errors"
)

// Loader is the interface for a format-specific configuration loader. Paths
// may be files or directories; directories are scanned for files of the
// loader's format and merged in order.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of the viewer configuration.
type Model struct {
	Content  Content
	Skybox   Skybox
	Settings Settings
	Relay    *Relay
}

// Content configures the primary asset load.
type Content struct {
	SourceURL string
	Filename  string
	// Data is raw content bytes handed in by the host; it never comes from
	// a config file.
	Data           []byte
	ForceAggregate bool
	Antialias      bool
}

// Skybox carries explicit skybox overrides. Nil/empty fields fall through
// to Settings, then to built-in defaults.
type Skybox struct {
	URL        string
	Projection string
	Scale      *float64
	Center     *[3]float64
}

// Settings are deployment-level defaults, one precedence step below the
// explicit Skybox block.
type Settings struct {
	SkyboxURL        string
	SkyboxProjection string
	SkyboxScale      *float64
	SkyboxCenter     *[3]float64
}

// Relay configures the presentation bridge. Nil disables it.
type Relay struct {
	URL       string
	Namespace string
	Timeout   string
}

// Validate checks that the model describes a runnable bootstrap.
func (m *Model) Validate() error {
	if m.Content.SourceURL == "" && len(m.Content.Data) == 0 {
		return errors.New("content requires a source URL or raw bytes")
	}
	if m.Relay != nil && m.Relay.URL == "" {
		return errors.New("relay requires a URL when configured")
	}
	return nil
}

// Merge overlays other onto m: non-zero fields of other win. Used when
// several config files or a CLI override layer apply in order.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Content.SourceURL != "" {
		m.Content.SourceURL = other.Content.SourceURL
	}
	if other.Content.Filename != "" {
		m.Content.Filename = other.Content.Filename
	}
	if len(other.Content.Data) > 0 {
		m.Content.Data = other.Content.Data
	}
	if other.Content.ForceAggregate {
		m.Content.ForceAggregate = true
	}
	if other.Content.Antialias {
		m.Content.Antialias = true
	}

	if other.Skybox.URL != "" {
		m.Skybox.URL = other.Skybox.URL
	}
	if other.Skybox.Projection != "" {
		m.Skybox.Projection = other.Skybox.Projection
	}
	if other.Skybox.Scale != nil {
		m.Skybox.Scale = other.Skybox.Scale
	}
	if other.Skybox.Center != nil {
		m.Skybox.Center = other.Skybox.Center
	}

	if other.Settings.SkyboxURL != "" {
		m.Settings.SkyboxURL = other.Settings.SkyboxURL
	}
	if other.Settings.SkyboxProjection != "" {
		m.Settings.SkyboxProjection = other.Settings.SkyboxProjection
	}
	if other.Settings.SkyboxScale != nil {
		m.Settings.SkyboxScale = other.Settings.SkyboxScale
	}
	if other.Settings.SkyboxCenter != nil {
		m.Settings.SkyboxCenter = other.Settings.SkyboxCenter
	}

	if other.Relay != nil {
		m.Relay = other.Relay
	}
}
