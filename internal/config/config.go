package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hexstrat/hexstrat/internal/reconcile"
)

type Config struct {
	Host    HostConfig    `toml:"host"`
	Scene   SceneConfig   `toml:"scene"`
	Script  ScriptConfig  `toml:"script"`
	Map     MapConfig     `toml:"map"`
	Logging LoggingConfig `toml:"logging"`
}

type HostConfig struct {
	Name      string        `toml:"name"`
	Mode      string        `toml:"mode"` // "editing" or "runtime"
	TickRate  time.Duration `toml:"tick_rate"`
	MaxTicks  int           `toml:"max_ticks"` // 0 = run until interrupted
	StartTime int64         // set at boot, not from config
}

type SceneConfig struct {
	Path string `toml:"path"`
}

type ScriptConfig struct {
	Path string `toml:"path"` // empty disables scripted edits
}

type MapConfig struct {
	Radius   int     `toml:"radius"`
	CellSize float64 `toml:"cell_size"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Uptime is how long the host has run as of now.
func (h HostConfig) Uptime(now time.Time) time.Duration {
	if h.StartTime == 0 {
		return 0
	}
	return now.Sub(time.Unix(h.StartTime, 0))
}

// Mode parses the host mode.
func (c *Config) Mode() (reconcile.Mode, error) {
	return reconcile.ParseMode(c.Host.Mode)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Host.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Host.TickRate <= 0 {
		return fmt.Errorf("host.tick_rate must be positive, got %s", c.Host.TickRate)
	}
	if c.Host.MaxTicks < 0 {
		return fmt.Errorf("host.max_ticks must not be negative, got %d", c.Host.MaxTicks)
	}
	if c.Map.Radius < 0 || !(c.Map.CellSize > 0) || math.IsInf(c.Map.CellSize, 0) {
		return fmt.Errorf("map radius %d / cell_size %v out of range", c.Map.Radius, c.Map.CellSize)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Host: HostConfig{
			Name:     "hexhost",
			Mode:     "editing",
			TickRate: 200 * time.Millisecond,
		},
		Scene: SceneConfig{
			Path: "data/scene.yaml",
		},
		Map: MapConfig{
			Radius:   8,
			CellSize: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
