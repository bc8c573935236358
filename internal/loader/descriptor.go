// Package loader fetches and instantiates the viewer's remote resources: the
// primary content asset and the optional skybox environment texture. Each
// load reports progress through a monotonic integer watermark and either
// resolves with an opaque scene handle or rejects with an error; there is no
// partial result, no retry and no internal timeout.
package loader

import (
	"path"

	"github.com/vk/stageview/internal/scene"
)

// Defaults hoisted out of the load logic so they are visible and testable.
const (
	// DefaultAlphaClip is the alpha-test reference applied to content
	// materials.
	DefaultAlphaClip = 1.0 / 255

	// SkyboxEncoding is the encoding hint for environment textures.
	SkyboxEncoding = "rgbm"
)

// DefaultRotation is the fixed orientation applied to freshly instantiated
// content, in degrees per axis.
var DefaultRotation = [3]float64{0, 180, 0}

// ContentDescriptor identifies the primary content asset and how to
// interpret it. Data, when non-empty, is used instead of fetching SourceURL.
type ContentDescriptor struct {
	SourceURL string
	Data      []byte
	// Filename drives type detection: the reserved manifest name marks a
	// multi-level-of-detail aggregate. Empty falls back to the URL's base.
	Filename string
	// ForceAggregate marks a raw buffer as aggregate without a manifest.
	ForceAggregate bool
	Antialias      bool

	RotationDeg [3]float64
	AlphaClip   float64
}

// NewContentDescriptor returns a descriptor with the fixed defaults filled.
func NewContentDescriptor(sourceURL, filename string) ContentDescriptor {
	return ContentDescriptor{
		SourceURL:   sourceURL,
		Filename:    filename,
		RotationDeg: DefaultRotation,
		AlphaClip:   DefaultAlphaClip,
	}
}

// name returns the logical resource name for logging and entity naming.
func (d ContentDescriptor) name() string {
	if d.Filename != "" {
		return d.Filename
	}
	return path.Base(d.SourceURL)
}

// SkyboxDescriptor identifies an equirectangular environment image and the
// sampling options it is loaded with.
type SkyboxDescriptor struct {
	URL     string
	Options scene.TextureOptions
}

// NewSkyboxDescriptor returns a descriptor with the fixed sampling options:
// no mipmaps, horizontal repeat, vertical clamp.
func NewSkyboxDescriptor(url string) SkyboxDescriptor {
	return SkyboxDescriptor{
		URL: url,
		Options: scene.TextureOptions{
			Mipmaps:  false,
			WrapU:    scene.WrapRepeat,
			WrapV:    scene.WrapClamp,
			Encoding: SkyboxEncoding,
		},
	}
}
