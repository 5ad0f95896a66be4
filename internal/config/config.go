package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme    = "cyberpunk"
	DefaultFPS      = 30
	DefaultDataDir  = ".deckmenu"
	DefaultLogLevel = "info"
	DefaultLogFile  = "deckmenu.log"
)

type Config struct {
	Theme   string    `yaml:"theme" env:"DECKMENU_THEME"`
	FPS     int       `yaml:"fps" env:"DECKMENU_FPS"`
	DataDir string    `yaml:"data_dir" env:"DECKMENU_DATA_DIR"`
	Log     LogConfig `yaml:"log"`
	Run     RunConfig `yaml:"run"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"DECKMENU_LOG_LEVEL"`
	// File is relative to DataDir unless absolute. Only the TUI writes here.
	File string `yaml:"file" env:"DECKMENU_LOG_FILE"`
}

// RunConfig holds defaults for headless scripted sessions.
type RunConfig struct {
	Realtime bool `yaml:"realtime" env:"DECKMENU_REALTIME"`
	Save     bool `yaml:"save" env:"DECKMENU_SAVE"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:   DefaultTheme,
		FPS:     DefaultFPS,
		DataDir: DefaultDataDir,
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file at path over cfg. Keys missing from the file
// keep their current values, so a file can refine a preset.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps out of range: %d", c.FPS)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, c.Log.File)
}

// TraceDir is where session traces are stored.
func (c *Config) TraceDir() string {
	return filepath.Join(c.DataDir, "traces")
}
