package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"lawmap/internal/colorscale"
	"lawmap/internal/selection"
)

const (
	ModeDetail     = "detail"
	ModeComparison = "comparison"
)

// Config is the full service configuration. Zero values are never used
// directly; Load starts from Default and overlays the file and environment.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Data   DataConfig   `yaml:"data"`
	Map    MapConfig    `yaml:"map"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// ViewTTL is how long an untouched view survives before it is dropped.
	ViewTTL   time.Duration `yaml:"view_ttl"`
	MaxViews  int           `yaml:"max_views"`
	RateLimit float64       `yaml:"rate_limit"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// DataConfig points at dataset files that replace the embedded ones.
type DataConfig struct {
	TopicsPath string `yaml:"topics_path"`
	RatesPath  string `yaml:"rates_path"`
}

type ScaleConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
}

type DetailHover struct {
	Selected string `yaml:"selected"`
	Relevant string `yaml:"relevant"`
	Inert    string `yaml:"inert"`
}

type DetailConfig struct {
	// FillValue is fed to both scales; topic records carry no number.
	FillValue float64     `yaml:"fill_value"`
	Base      ScaleConfig `yaml:"base"`
	Selected  ScaleConfig `yaml:"selected"`
	Hover     DetailHover `yaml:"hover"`
}

type ComparisonConfig struct {
	Base    ScaleConfig `yaml:"base"`
	Palette []string    `yaml:"palette"`
	Hover   string      `yaml:"hover"`
}

type MapConfig struct {
	// Mode is the variant used when a view is created without one.
	Mode       string           `yaml:"mode"`
	InertFill  string           `yaml:"inert_fill"`
	Detail     DetailConfig     `yaml:"detail"`
	Comparison ComparisonConfig `yaml:"comparison"`
}

// Default is the stock palette and server setup.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			ViewTTL:   30 * time.Minute,
			MaxViews:  10000,
			RateLimit: 20,
		},
		Log: LogConfig{Level: "info", Color: true},
		Map: MapConfig{
			Mode:      ModeDetail,
			InertFill: "#F5F4F6",
			Detail: DetailConfig{
				FillValue: 1,
				Base:      ScaleConfig{Min: 0, Max: 1, From: "#E6F3FF", To: "#90CDF4"},
				Selected:  ScaleConfig{Min: 0, Max: 1, From: "#FFE0B2", To: "#FFAB40"},
				Hover:     DetailHover{Selected: "#FFCC80", Relevant: "#64B5F6", Inert: "#E0E0E0"},
			},
			Comparison: ComparisonConfig{
				Base:    ScaleConfig{Min: 0, Max: 1.5, From: "#e6f2ff", To: "#0066cc"},
				Palette: []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8"},
				Hover:   "#90CDF4",
			},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// LAWMAP_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LAWMAP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LAWMAP_MODE"); v != "" {
		c.Map.Mode = v
	}
	if v := os.Getenv("LAWMAP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LAWMAP_VIEW_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LAWMAP_VIEW_TTL: %w", err)
		}
		c.Server.ViewTTL = ttl
	}
	if v := os.Getenv("LAWMAP_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LAWMAP_RATE_LIMIT: %w", err)
		}
		c.Server.RateLimit = limit
	}
	if v := os.Getenv("LAWMAP_TOPICS_PATH"); v != "" {
		c.Data.TopicsPath = v
	}
	if v := os.Getenv("LAWMAP_RATES_PATH"); v != "" {
		c.Data.RatesPath = v
	}
	return nil
}

// Validate checks everything a view needs at construction time.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.ViewTTL <= 0 {
		errs = append(errs, errors.New("server.view_ttl must be positive"))
	}
	if c.Server.MaxViews <= 0 {
		errs = append(errs, errors.New("server.max_views must be positive"))
	}
	if c.Map.Mode != ModeDetail && c.Map.Mode != ModeComparison {
		errs = append(errs, fmt.Errorf("map.mode %q is not %q or %q", c.Map.Mode, ModeDetail, ModeComparison))
	}

	for _, s := range []struct {
		name  string
		scale ScaleConfig
	}{
		{"map.detail.base", c.Map.Detail.Base},
		{"map.detail.selected", c.Map.Detail.Selected},
		{"map.comparison.base", c.Map.Comparison.Base},
	} {
		if _, err := s.scale.Build(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if _, err := colorscale.NewPalette(selection.MaxCompared, c.Map.Comparison.Palette...); err != nil {
		errs = append(errs, fmt.Errorf("map.comparison.palette: %w", err))
	}

	hovers := map[string]string{
		"map.inert_fill":            c.Map.InertFill,
		"map.detail.hover.selected": c.Map.Detail.Hover.Selected,
		"map.detail.hover.relevant": c.Map.Detail.Hover.Relevant,
		"map.detail.hover.inert":    c.Map.Detail.Hover.Inert,
		"map.comparison.hover":      c.Map.Comparison.Hover,
	}
	for name, color := range hovers {
		if _, err := colorscale.ParseHex(color); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Build turns the scale settings into a color scale.
func (s ScaleConfig) Build() (*colorscale.Linear, error) {
	return colorscale.NewLinear(s.Min, s.Max, s.From, s.To)
}
