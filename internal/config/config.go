// Package config loads roadmap settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Render RenderConfig `yaml:"render"`
	Export ExportConfig `yaml:"export"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
}

type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file; ":memory:" keeps history in RAM
}

type RenderConfig struct {
	Seed uint64 `yaml:"seed"` // sketch perturbation seed
}

type ExportConfig struct {
	Scale       float64 `yaml:"scale"` // device scale factor for raster output
	JPEGQuality int     `yaml:"jpeg_quality"`
	Timeout     int     `yaml:"timeout"`     // seconds per export
	ChromePath  string  `yaml:"chrome_path"` // empty uses the chromedp default lookup
}

// ExportTimeout is Export.Timeout as a duration.
func (c Config) ExportTimeout() time.Duration {
	return time.Duration(c.Export.Timeout) * time.Second
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "3000", ReadTimeout: 10, WriteTimeout: 30},
		Store:  StoreConfig{Path: "roadmap.db"},
		Render: RenderConfig{Seed: 42},
		Export: ExportConfig{Scale: 2, JPEGQuality: 90, Timeout: 30},
	}
}

// Load reads path over the defaults, when path is set, and then applies
// ROADMAP_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Server.Port = getEnv("ROADMAP_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvAsInt("ROADMAP_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvAsInt("ROADMAP_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Store.Path = getEnv("ROADMAP_DB", cfg.Store.Path)
	cfg.Render.Seed = uint64(getEnvAsInt("ROADMAP_SEED", int(cfg.Render.Seed)))
	cfg.Export.ChromePath = getEnv("ROADMAP_CHROME", cfg.Export.ChromePath)
	cfg.Export.Timeout = getEnvAsInt("ROADMAP_EXPORT_TIMEOUT", cfg.Export.Timeout)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	switch {
	case c.Server.Port == "":
		return fmt.Errorf("invalid config: server.port is empty")
	case c.Store.Path == "":
		return fmt.Errorf("invalid config: store.path is empty")
	case c.Export.Scale <= 0:
		return fmt.Errorf("invalid config: export.scale must be positive, got %v", c.Export.Scale)
	case c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100:
		return fmt.Errorf("invalid config: export.jpeg_quality must be 1..100, got %d", c.Export.JPEGQuality)
	case c.Export.Timeout <= 0:
		return fmt.Errorf("invalid config: export.timeout must be positive, got %d", c.Export.Timeout)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
