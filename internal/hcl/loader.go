// Package hcl implements the config.Loader interface for HCL viewer
// configuration files. A config describes the content asset, optional skybox
// overrides, deployment settings defaults and the optional presentation
// relay:
//
//	content {
//	  url       = "https://assets.example.com/robot.glb"
//	  file      = "robot.glb"
//	  antialias = true
//	}
//
//	skybox {
//	  url    = "https://assets.example.com/env.jpg"
//	  scale  = 150
//	  center = [0, 0.05, 0]
//	}
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/stageview/internal/config"
	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader loads viewer configuration from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every path (files, or directories scanned for .hcl files),
// decodes them and merges them in order into a single model. Later files
// override earlier ones field by field.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path %q: %w", p, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(p, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("failed to scan config directory %q: %w", p, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, p)
		}
	}
	logger.Debug("Resolved config files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		part, err := decodeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}
	return model, nil
}

// fileConfig is the HCL schema of one config file.
type fileConfig struct {
	Content  *contentBlock  `hcl:"content,block"`
	Skybox   *skyboxBlock   `hcl:"skybox,block"`
	Settings *settingsBlock `hcl:"settings,block"`
	Relay    *relayBlock    `hcl:"relay,block"`
}

type contentBlock struct {
	URL       string `hcl:"url,optional"`
	File      string `hcl:"file,optional"`
	Aggregate bool   `hcl:"aggregate,optional"`
	Antialias bool   `hcl:"antialias,optional"`
}

type skyboxBlock struct {
	URL        string         `hcl:"url,optional"`
	Projection string         `hcl:"projection,optional"`
	Scale      *float64       `hcl:"scale,optional"`
	Center     hcl.Expression `hcl:"center,optional"`
}

type settingsBlock struct {
	SkyboxURL        string         `hcl:"skybox_url,optional"`
	SkyboxProjection string         `hcl:"skybox_projection,optional"`
	SkyboxScale      *float64       `hcl:"skybox_scale,optional"`
	SkyboxCenter     hcl.Expression `hcl:"skybox_center,optional"`
}

type relayBlock struct {
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Timeout   string `hcl:"timeout,optional"`
}

// decodeFile parses and decodes a single HCL config file into the
// format-agnostic model.
func decodeFile(ctx context.Context, filePath string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding config file.", "path", filePath)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
	}

	model := &config.Model{}
	if fc.Content != nil {
		model.Content = config.Content{
			SourceURL:      fc.Content.URL,
			Filename:       fc.Content.File,
			ForceAggregate: fc.Content.Aggregate,
			Antialias:      fc.Content.Antialias,
		}
	}
	if fc.Skybox != nil {
		center, err := centerFromExpr(fc.Skybox.Center)
		if err != nil {
			return nil, fmt.Errorf("invalid skybox.center in %s: %w", filePath, err)
		}
		model.Skybox = config.Skybox{
			URL:        fc.Skybox.URL,
			Projection: fc.Skybox.Projection,
			Scale:      fc.Skybox.Scale,
			Center:     center,
		}
	}
	if fc.Settings != nil {
		center, err := centerFromExpr(fc.Settings.SkyboxCenter)
		if err != nil {
			return nil, fmt.Errorf("invalid settings.skybox_center in %s: %w", filePath, err)
		}
		model.Settings = config.Settings{
			SkyboxURL:        fc.Settings.SkyboxURL,
			SkyboxProjection: fc.Settings.SkyboxProjection,
			SkyboxScale:      fc.Settings.SkyboxScale,
			SkyboxCenter:     center,
		}
	}
	if fc.Relay != nil {
		model.Relay = &config.Relay{
			URL:       fc.Relay.URL,
			Namespace: fc.Relay.Namespace,
			Timeout:   fc.Relay.Timeout,
		}
	}

	logger.Debug("Successfully decoded config file.", "path", filePath)
	return model, nil
}

// centerFromExpr evaluates a center coordinate expression into [x, y, z].
// The attribute is optional; a nil or null expression yields no override.
func centerFromExpr(expr hcl.Expression) (*[3]float64, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate expression: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("expected a list of numbers: %w", err)
	}

	var coords []float64
	if err := gocty.FromCtyValue(listVal, &coords); err != nil {
		return nil, fmt.Errorf("failed to read coordinates: %w", err)
	}
	if len(coords) != 3 {
		return nil, fmt.Errorf("expected exactly 3 coordinates, got %d", len(coords))
	}

	return &[3]float64{coords[0], coords[1], coords[2]}, nil
}
