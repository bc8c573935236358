package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/scene"
)

// Content loads the primary 3D asset: it resolves the descriptor's bytes,
// optionally interprets them as an aggregate manifest, instantiates the
// model through the scene engine, orients it and attaches it to the root.
type Content struct {
	engine scene.Engine
	client *http.Client
}

// NewContent builds a content loader on top of the given engine and HTTP
// client.
func NewContent(engine scene.Engine, client *http.Client) *Content {
	return &Content{engine: engine, client: client}
}

// Load runs one content load to completion. onProgress, when non-nil, is
// invoked once per new integer watermark value. Every failure is logged and
// returned; nothing is retried.
func (l *Content) Load(ctx context.Context, desc ContentDescriptor, onProgress ProgressFunc) (scene.Entity, error) {
	logger := ctxlog.FromContext(ctx).With("resource", desc.name())
	logger.Debug("Content load started.")

	data := desc.Data
	if len(data) == 0 {
		fetched, err := fetch(ctx, l.client, desc.SourceURL, onProgress)
		if err != nil {
			logger.Error("Content fetch failed.", "url", desc.SourceURL, "error", err)
			return nil, err
		}
		data = fetched
	} else if onProgress != nil {
		// An in-memory buffer is already fully received.
		t := NewTracker()
		if pct, ok := t.Update(int64(len(data)), int64(len(data))); ok {
			onProgress(pct)
		}
	}

	src, err := buildSource(desc, data)
	if err != nil {
		logger.Error("Content interpretation failed.", "error", err)
		return nil, err
	}

	entity, err := l.engine.CreateModel(ctx, src, scene.MaterialOptions{
		Aggregate: src.Aggregate,
		Antialias: desc.Antialias,
		AlphaClip: desc.AlphaClip,
	})
	if err != nil {
		logger.Error("Content instantiation failed.", "error", err)
		return nil, fmt.Errorf("failed to instantiate content %q: %w", src.Name, err)
	}

	entity.SetRotation(desc.RotationDeg)
	if err := l.engine.AttachToRoot(entity); err != nil {
		logger.Error("Attaching content to scene root failed.", "error", err)
		return nil, fmt.Errorf("failed to attach %q to scene root: %w", src.Name, err)
	}

	logger.Debug("Content load finished.", "aggregate", src.Aggregate)
	return entity, nil
}

// buildSource interprets the resolved bytes. The reserved manifest filename
// switches to metadata deserialization; any other name uses the buffer
// verbatim.
func buildSource(desc ContentDescriptor, data []byte) (scene.ModelSource, error) {
	if path.Base(desc.Filename) == ManifestFilename {
		m, err := ParseManifest(data)
		if err != nil {
			return scene.ModelSource{}, err
		}
		levels := make([]scene.Level, 0, len(m.Levels))
		for _, lvl := range m.Levels {
			levels = append(levels, scene.Level{URL: lvl.URL, Size: lvl.Size})
		}
		return scene.ModelSource{
			Name:      m.Name,
			Aggregate: true,
			Levels:    levels,
		}, nil
	}

	return scene.ModelSource{
		Name:      desc.name(),
		Data:      data,
		Aggregate: desc.ForceAggregate,
	}, nil
}

// fetch downloads a resource, driving the progress watermark from bytes
// received over the response's declared length. A response without a length
// reports a single 100 once the body ends.
func fetch(ctx context.Context, client *http.Client, url string, onProgress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	tracker := NewTracker()
	expected := resp.ContentLength
	var data []byte
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			if onProgress != nil {
				if pct, ok := tracker.Update(int64(len(data)), expected); ok {
					onProgress(pct)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed reading body of %s: %w", url, readErr)
		}
	}

	if onProgress != nil {
		if pct, ok := tracker.Complete(); ok {
			onProgress(pct)
		}
	}
	return data, nil
}
