package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vbagx/storage"
)

const ConfigFile = "config.json"

// Config is the launcher-level configuration. Emulator preferences edited in
// the menu live in settings.xml instead.
type Config struct {
	Mounts         map[string]string `json:"mounts,omitempty"`
	DataDir        string            `json:"data_dir,omitempty"`
	LibraryPath    string            `json:"library_path,omitempty"`
	LogLevel       LogLevel          `json:"log_level,omitempty"`
	Language       string            `json:"language,omitempty"`
	ReleaseChannel ReleaseChannel    `json:"release_channel,omitempty"`
	UpdateURL      string            `json:"update_url,omitempty"`
	UpdateAsset    string            `json:"update_asset,omitempty"`
	WindowWidth    int               `json:"window_width,omitempty"`
	WindowHeight   int               `json:"window_height,omitempty"`
	Fullscreen     bool              `json:"fullscreen,omitempty"`
	Tick           time.Duration     `json:"tick,omitempty"`

	// Wii and GameCube features the host cannot tell on its own.
	Wii        bool `json:"wii,omitempty"`
	Widescreen bool `json:"widescreen,omitempty"`
	Network    bool `json:"network,omitempty"`
}

func (c Config) ToLoggable() any {
	return map[string]any{
		"mounts":          c.Mounts,
		"data_dir":        c.DataDir,
		"library_path":    c.LibraryPath,
		"log_level":       c.LogLevel,
		"language":        c.Language,
		"release_channel": c.ReleaseChannel,
		"update_url":      c.UpdateURL,
		"window":          fmt.Sprintf("%dx%d", c.WindowWidth, c.WindowHeight),
		"fullscreen":      c.Fullscreen,
		"tick":            c.Tick,
		"wii":             c.Wii,
	}
}

// MountRoots converts the configured mounts to storage methods. Unknown keys
// are returned so the caller can warn about them.
func (c Config) MountRoots() (map[storage.Method]string, []string) {
	roots := make(map[storage.Method]string, len(c.Mounts))
	var unknown []string
	for key, dir := range c.Mounts {
		m, ok := storage.ParseMethod(key)
		if !ok || m == storage.MethodAuto {
			unknown = append(unknown, key)
			continue
		}
		roots[m] = dir
	}
	return roots, unknown
}

func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.xml")
}

func DefaultConfig() *Config {
	c := &Config{}
	c.fillDefaults()
	return c
}

func (c *Config) fillDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.LibraryPath == "" {
		c.LibraryPath = filepath.Join(c.DataDir, "library.db")
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelError
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.ReleaseChannel == "" {
		c.ReleaseChannel = ReleaseChannelStable
	}
	if c.UpdateAsset == "" {
		c.UpdateAsset = "vbagx"
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth, c.WindowHeight = 640, 480
	}
	if len(c.Mounts) == 0 {
		c.Mounts = map[string]string{storage.MethodSD.String(): "sd"}
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	config.fillDefaults()
	return &config, nil
}

func SaveConfig(path string, config *Config) error {
	config.fillDefaults()

	pretty, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, pretty, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
