// Package config loads the TOML launch file and watches it for edits.
//
//	[window]
//	width = 1280
//	height = 720
//
//	[render]
//	execution_width = 8
//
//	[gallery]
//	effect = "sdf"
//
//	[effects.sdf]
//	shape = "Heart"
//	is_rotating = true
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Render struct {
	// ExecutionWidth is the X size of every compute workgroup.
	ExecutionWidth uint32 `toml:"execution_width"`
}

type Gallery struct {
	Effect string `toml:"effect"`
}

type Log struct {
	Debug  bool   `toml:"debug"`
	Prefix string `toml:"prefix"`
}

type Capture struct {
	Dir        string `toml:"dir"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Caption    bool   `toml:"caption"`
	FPS        int    `toml:"fps"`
	Codec      string `toml:"codec"`
	FFmpegPath string `toml:"ffmpeg_path"`
}

type Config struct {
	Window  Window  `toml:"window"`
	Render  Render  `toml:"render"`
	Gallery Gallery `toml:"gallery"`
	Log     Log     `toml:"log"`
	Capture Capture `toml:"capture"`

	// Effects maps an effect id to control overrides keyed by control key.
	Effects map[string]map[string]any `toml:"effects"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "shaderlab",
		},
		Render:  Render{ExecutionWidth: 8},
		Gallery: Gallery{Effect: "animated_gradient"},
		Log:     Log{Prefix: "shaderlab"},
		Capture: Capture{
			Dir:     "captures",
			Caption: true,
			FPS:     60,
			Codec:   "libx264",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Render.ExecutionWidth == 0 {
		return errors.New("render.execution_width must be positive")
	}
	if c.Capture.Width < 0 || c.Capture.Height < 0 || c.Capture.FPS < 0 {
		return errors.New("capture size and fps must not be negative")
	}
	return nil
}

// Overrides returns the control overrides configured for effect id. Table
// names match case-insensitively.
func (c Config) Overrides(id string) map[string]any {
	if o, ok := c.Effects[id]; ok {
		return o
	}
	for k, o := range c.Effects {
		if strings.EqualFold(k, id) {
			return o
		}
	}
	return nil
}
