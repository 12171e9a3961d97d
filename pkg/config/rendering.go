// Package config loads and validates the declarative documents the tools
// consume: per-document-type rendering configs and generator constraints.
// JSON and YAML are both accepted; validation happens at load time so
// malformed configs abort the run before any record is touched.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-custdoc/pkg/fieldmap"
)

// Rendering declares how one document type is produced: the generic template,
// the output filename pattern, an optional variant-selection rule, and the
// ordered field declarations that build the rendering context.
type Rendering struct {
	Template      string                 `json:"template" yaml:"template"`
	OutputPattern string                 `json:"output_pattern,omitempty" yaml:"output_pattern,omitempty"`
	VariantRule   string                 `json:"variant_rule,omitempty" yaml:"variant_rule,omitempty"`
	Fields        []fieldmap.Declaration `json:"fields" yaml:"fields"`

	// Compiled holds the parsed field declarations; populated by
	// ParseRendering so per-record evaluation never re-parses sources.
	Compiled []fieldmap.Field `json:"-" yaml:"-"`
}

// LoadRendering reads and parses a rendering config file. The format is
// chosen by extension: .yaml/.yml parse as YAML, everything else as JSON.
func LoadRendering(path string) (Rendering, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rendering{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseRendering(data, path)
}

// ParseRendering decodes and validates a rendering config document. name is
// used for error messages and format detection only.
func ParseRendering(data []byte, name string) (Rendering, error) {
	var cfg Rendering
	if err := unmarshalDocument(data, name, &cfg); err != nil {
		return Rendering{}, fmt.Errorf("config: parse %s: %w", name, err)
	}

	cfg.Template = strings.TrimSpace(cfg.Template)
	if cfg.Template == "" {
		return Rendering{}, fmt.Errorf("config: %s is missing a template", name)
	}
	if len(cfg.Fields) == 0 {
		return Rendering{}, fmt.Errorf("config: %s declares no fields", name)
	}

	compiled, err := fieldmap.Compile(cfg.Fields)
	if err != nil {
		return Rendering{}, fmt.Errorf("config: %s: %w", name, err)
	}
	cfg.Compiled = compiled
	return cfg, nil
}

func unmarshalDocument(data []byte, name string, out any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}
