package loader

import (
	"encoding/json"
	"fmt"
)

// ManifestFilename is the reserved filename that marks the content buffer as
// structured metadata for a multi-level-of-detail aggregate instead of raw
// model bytes.
const ManifestFilename = "metadata.json"

// Manifest is the deserialized aggregate metadata: a name and an ordered
// list of level-of-detail entries, coarsest first.
type Manifest struct {
	Name   string          `json:"name"`
	Levels []ManifestLevel `json:"lods"`
}

// ManifestLevel references one level-of-detail payload.
type ManifestLevel struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ParseManifest deserializes aggregate metadata from buf.
func ParseManifest(buf []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, fmt.Errorf("failed to parse aggregate manifest: %w", err)
	}
	if len(m.Levels) == 0 {
		return nil, fmt.Errorf("aggregate manifest %q declares no levels", m.Name)
	}
	return &m, nil
}
