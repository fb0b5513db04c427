// Package config loads the shared tool settings from an optional yaml
// file, with environment overrides for the workspace directory.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/gisops/go-polygon-qa/spatial"
)

type Config struct {
	// Workspace is the directory output layers are written to. Empty
	// means "beside the input file".
	Workspace string `yaml:"workspace"`

	// InputReference names the coordinate reference the input features
	// are delivered in.
	InputReference string `yaml:"input_reference"`

	Spinner  bool `yaml:"spinner"`
	Validate bool `yaml:"validate"`

	// References adds coordinate references beyond the built-in set.
	References []spatial.Ref `yaml:"references"`
}

func Default() *Config {
	return &Config{
		InputReference: "GCS_WGS_1984",
		Spinner:        true,
	}
}

// Load reads settings from path over the defaults. An empty path keeps
// the defaults. QA_WORKSPACE in the environment wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if ws := os.Getenv("QA_WORKSPACE"); ws != "" {
		cfg.Workspace = ws
	}
	return cfg, nil
}

// Lookup resolves a coordinate reference by name, preferring config
// entries over the built-in table.
func (c *Config) Lookup(name string) (spatial.Ref, bool) {
	for _, r := range c.References {
		if r.Name == name {
			return r, true
		}
	}
	r, ok := spatial.Known[name]
	return r, ok
}
