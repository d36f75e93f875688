package spritebatch

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxBatchSprites = 16384
	defaultPageSize        = 1024
)

// AtlasConfig configures the texture atlas.
type AtlasConfig struct {
	// Enabled packs sprites into shared pages. When false every sprite
	// gets a dedicated surface.
	Enabled bool `yaml:"enabled"`
	// PageWidth and PageHeight are the dimensions of shared pages.
	PageWidth  int `yaml:"page_width"`
	PageHeight int `yaml:"page_height"`
	// Shadow keeps a CPU copy of every page so DumpPages can write them.
	Shadow bool `yaml:"shadow"`
}

// Config holds batcher settings. Zero numeric fields are replaced by their
// defaults in NewBatcher.
type Config struct {
	// InitialCapacity is the number of quads the batch holds before its
	// first growth.
	InitialCapacity int `yaml:"initial_capacity"`
	// MaxBatchSprites caps the quads issued by a single draw operation;
	// longer runs are split into several draws.
	MaxBatchSprites int `yaml:"max_batch_sprites"`
	// DrawMode selects merged-mesh or per-run quad submission.
	DrawMode DrawMode `yaml:"draw_mode"`
	// Atlas configures the owned texture atlas.
	Atlas AtlasConfig `yaml:"atlas"`
	// Debug turns contract violations into panics and enables warnings
	// and per-frame stats on stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: defaultInitialCapacity,
		MaxBatchSprites: defaultMaxBatchSprites,
		DrawMode:        DrawModeMesh,
		Atlas: AtlasConfig{
			Enabled:    true,
			PageWidth:  defaultPageSize,
			PageHeight: defaultPageSize,
		},
	}
}

// LoadConfig parses YAML configuration. Keys that are absent keep their
// DefaultConfig values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("spritebatch: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that can never work.
func (c Config) Validate() error {
	var errs []error
	if c.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("initial_capacity %d is negative", c.InitialCapacity))
	}
	if c.MaxBatchSprites < 0 {
		errs = append(errs, fmt.Errorf("max_batch_sprites %d is negative", c.MaxBatchSprites))
	}
	if c.Atlas.PageWidth < 0 || c.Atlas.PageHeight < 0 {
		errs = append(errs, fmt.Errorf("atlas page size %dx%d is negative", c.Atlas.PageWidth, c.Atlas.PageHeight))
	}
	if c.DrawMode > DrawModeQuad {
		errs = append(errs, fmt.Errorf("unknown draw mode %d", c.DrawMode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("spritebatch: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// withDefaults fills zero numeric fields.
func (c Config) withDefaults() Config {
	if c.InitialCapacity == 0 {
		c.InitialCapacity = defaultInitialCapacity
	}
	if c.MaxBatchSprites == 0 {
		c.MaxBatchSprites = defaultMaxBatchSprites
	}
	if c.Atlas.PageWidth == 0 {
		c.Atlas.PageWidth = defaultPageSize
	}
	if c.Atlas.PageHeight == 0 {
		c.Atlas.PageHeight = defaultPageSize
	}
	return c
}

// UnmarshalYAML accepts "mesh" or "quad".
func (m *DrawMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "mesh", "":
		*m = DrawModeMesh
	case "quad":
		*m = DrawModeQuad
	default:
		return fmt.Errorf("unknown draw mode %q", s)
	}
	return nil
}

// MarshalYAML writes the mode name.
func (m DrawMode) MarshalYAML() (any, error) {
	return m.String(), nil
}
