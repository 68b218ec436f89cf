package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width" yaml:"width" toml:"width"`
	Height              int           `json:"height" yaml:"height" toml:"height"`
	OriginX             int           `json:"origin_x" yaml:"origin_x" toml:"origin_x"`
	OriginY             int           `json:"origin_y" yaml:"origin_y" toml:"origin_y"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate" toml:"frame_rate"`
	Seed                int64         `json:"seed" yaml:"seed" toml:"seed"` // 0 picks a time-based seed
	SeedCount           int           `json:"seed_count" yaml:"seed_count" toml:"seed_count"`
	SeedMin             int           `json:"seed_min" yaml:"seed_min" toml:"seed_min"`
	SeedMax             int           `json:"seed_max" yaml:"seed_max" toml:"seed_max"`
	Pattern             string        `json:"pattern" yaml:"pattern" toml:"pattern"` // built-in name or .cells file
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations" toml:"max_generations"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart" toml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold" toml:"stagnation_threshold"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count" toml:"injection_count"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool" toml:"use_memory_pool"`
	ShowRuler           bool          `json:"show_ruler" yaml:"show_ruler" toml:"show_ruler"`
	Color               bool          `json:"color" yaml:"color" toml:"color"`
	AliveGlyph          string        `json:"alive_glyph" yaml:"alive_glyph" toml:"alive_glyph"`
	DeadGlyph           string        `json:"dead_glyph" yaml:"dead_glyph" toml:"dead_glyph"`
	LogLevel            string        `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               20,
		Height:              20,
		FrameRate:           500 * time.Millisecond,
		SeedCount:           100,
		SeedMin:             0,
		SeedMax:             10,
		MaxGenerations:      0, // run until interrupted
		AutoRestart:         false,
		StagnationThreshold: 5,
		InjectionCount:      0,
		UseMemoryPool:       true,
		ShowRuler:           true,
		Color:               true,
		AliveGlyph:          "@",
		DeadGlyph:           "-",
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a JSON, YAML or TOML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	default:
		return config, errors.Errorf("[LoadConfig] unsupported config format %q: %+v", ext, filename)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// UnmarshalJSON accepts frame_rate either as a duration string ("500ms")
// or as integer nanoseconds
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		FrameRate json.RawMessage `json:"frame_rate"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.FrameRate) == 0 || string(aux.FrameRate) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.FrameRate, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return errors.Wrapf(err, "[UnmarshalJSON] invalid frame_rate %q", text)
		}
		c.FrameRate = d
		return nil
	}

	var nanos int64
	if err := json.Unmarshal(aux.FrameRate, &nanos); err != nil {
		return errors.Wrapf(err, "[UnmarshalJSON] invalid frame_rate %s", aux.FrameRate)
	}
	c.FrameRate = time.Duration(nanos)
	return nil
}

// Validate rejects configurations the driver cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Validate] window must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SeedMax < c.SeedMin {
		return errors.Errorf("[Validate] seed_max %d is below seed_min %d", c.SeedMax, c.SeedMin)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame_rate must not be negative, got %s", c.FrameRate)
	}
	if len([]rune(c.AliveGlyph)) != 1 || len([]rune(c.DeadGlyph)) != 1 {
		return errors.Errorf("[Validate] glyphs must be single characters, got %q and %q", c.AliveGlyph, c.DeadGlyph)
	}
	return nil
}
