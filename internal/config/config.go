// Package config loads game settings from config/game.yaml, .env and TILTMAZE_* variables.
// Command line flags in cmd/game override all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/game.yaml"

// Input modes.
const (
	InputKeyboard = "keyboard"
	InputPose     = "pose"
	InputBoth     = "both"
)

// Render surfaces.
const (
	SurfaceRaylib = "raylib"
	SurfaceTerm   = "term"
)

var ErrInvalid = errors.New("invalid config")

// Config is the full set of game settings.
type Config struct {
	Input   string       `yaml:"input"`
	Surface string       `yaml:"surface"`
	Debug   bool         `yaml:"debug"`
	Stage   string       `yaml:"stage,omitempty"`
	LogPath string       `yaml:"log"`
	Window  WindowConfig `yaml:"window"`
	Pose    PoseConfig   `yaml:"pose"`
	Audio   AudioConfig  `yaml:"audio"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	// Width and Height are used when not fullscreen.
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
	// Font is a font name or path searched under assets/fonts for the console and overlays.
	Font string `yaml:"font,omitempty"`
}

// PoseConfig selects where pose samples come from. Recording wins over the websocket feed when set.
type PoseConfig struct {
	Addr       string  `yaml:"addr"`
	Path       string  `yaml:"path"`
	Recording  string  `yaml:"recording,omitempty"`
	IntervalMS int     `yaml:"interval_ms"`
	Scale      float32 `yaml:"scale"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Input:   InputKeyboard,
		Surface: SurfaceRaylib,
		LogPath: "logs/game.txt",
		Window: WindowConfig{
			Title:      "tilt maze",
			Fullscreen: true,
			Width:      1280,
			Height:     960,
		},
		Pose: PoseConfig{
			Addr:       ":8765",
			Path:       "/pose",
			IntervalMS: 100,
			Scale:      15,
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Load reads path on top of Default. A missing file yields Default and no error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads a .env file into the process environment. A missing file is not an error.
// Variables already set are kept.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from TILTMAZE_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("TILTMAZE_INPUT", &cfg.Input)
	str("TILTMAZE_SURFACE", &cfg.Surface)
	str("TILTMAZE_STAGE", &cfg.Stage)
	str("TILTMAZE_LOG", &cfg.LogPath)
	str("TILTMAZE_POSE_ADDR", &cfg.Pose.Addr)
	str("TILTMAZE_RECORDING", &cfg.Pose.Recording)

	if v := getenv("TILTMAZE_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TILTMAZE_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v := getenv("TILTMAZE_AUDIO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TILTMAZE_AUDIO: %w", err)
		}
		cfg.Audio.Enabled = b
	}
	if v := getenv("TILTMAZE_POSE_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("config: TILTMAZE_POSE_SCALE: %w", err)
		}
		cfg.Pose.Scale = float32(f)
	}
	return nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Input {
	case InputKeyboard, InputPose, InputBoth:
	default:
		return fmt.Errorf("config: input %q: %w", c.Input, ErrInvalid)
	}
	switch c.Surface {
	case SurfaceRaylib, SurfaceTerm:
	default:
		return fmt.Errorf("config: surface %q: %w", c.Surface, ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio volume %v: %w", c.Audio.Volume, ErrInvalid)
	}
	return nil
}

// UsesPose reports whether pose samples drive the player.
func (c Config) UsesPose() bool {
	return c.Input == InputPose || c.Input == InputBoth
}

// UsesKeyboard reports whether arrow keys drive the player. Debug mode always enables them.
func (c Config) UsesKeyboard() bool {
	return c.Debug || c.Input == InputKeyboard || c.Input == InputBoth
}
