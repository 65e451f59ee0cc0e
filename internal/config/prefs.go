package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PrefsPath is where viewer preferences are persisted across runs.
const PrefsPath = "config/prefs.yaml"

// Prefs holds viewer-only preferences toggled from the in-game console. Game settings live in Config.
type Prefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowStatus   bool `yaml:"show_status"`
}

// DefaultPrefs returns preferences with every overlay hidden.
func DefaultPrefs() Prefs {
	return Prefs{}
}

// LoadPrefs reads preferences from path. If the file is missing or invalid, returns DefaultPrefs.
func LoadPrefs(path string) Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPrefs()
	}
	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPrefs()
	}
	return p
}

// SavePrefs writes preferences to path, creating the directory if needed.
func SavePrefs(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
