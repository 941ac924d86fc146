package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/olablt/gio-mapdemo/geo"
)

// Config holds application configuration.
type Config struct {
	Window WindowConfig
	Map    MapConfig
	Tiles  TilesConfig
	Pins   PinsConfig
	Log    LogConfig
}

// WindowConfig holds window settings in dp.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// MapConfig holds map surface settings.
type MapConfig struct {
	MinZoom          int    `mapstructure:"min_zoom"`
	MaxZoom          int    `mapstructure:"max_zoom"`
	Offline          bool   // local placeholder tiles only
	ShowUserLocation bool   `mapstructure:"show_user_location"`
	UserLocation     string `mapstructure:"user_location"` // "lat,lng", empty when unknown
}

// TilesConfig holds tile sources. URLs use {z}, {x} and {y} placeholders.
type TilesConfig struct {
	StandardURL  string        `mapstructure:"standard_url"`
	SatelliteURL string        `mapstructure:"satellite_url"`
	LabelsURL    string        `mapstructure:"labels_url"`
	TrafficURL   string        `mapstructure:"traffic_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	Workers      int
	CacheSize    int `mapstructure:"cache_size"`
	Timeout      time.Duration
}

// PinsConfig holds custom pin settings.
type PinsConfig struct {
	TitleMode string `mapstructure:"title_mode"` // counter or length
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Location returns the configured device location, if any.
func (c MapConfig) Location() (geo.Coordinate, bool) {
	if c.UserLocation == "" {
		return geo.Coordinate{}, false
	}
	loc, err := geo.ParseCoordinate(c.UserLocation)
	return loc, err == nil
}

// Load reads configuration from file and env. Env var overrides use prefix MAPDEMO_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("window.title", "Map Demo")
	v.SetDefault("window.width", 420)
	v.SetDefault("window.height", 820)
	v.SetDefault("map.min_zoom", 2)
	v.SetDefault("map.max_zoom", 19)
	v.SetDefault("map.offline", false)
	v.SetDefault("map.show_user_location", true)
	v.SetDefault("map.user_location", "")
	v.SetDefault("tiles.standard_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("tiles.satellite_url", "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}")
	v.SetDefault("tiles.labels_url", "https://server.arcgisonline.com/ArcGIS/rest/services/Reference/World_Boundaries_and_Places/MapServer/tile/{z}/{y}/{x}")
	v.SetDefault("tiles.traffic_url", "")
	v.SetDefault("tiles.user_agent", "gio-mapdemo/1.0 (+https://github.com/olablt/gio-mapdemo)")
	v.SetDefault("tiles.workers", 4)
	v.SetDefault("tiles.cache_size", 512)
	v.SetDefault("tiles.timeout", 10*time.Second)
	v.SetDefault("pins.title_mode", "counter")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MAPDEMO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "mapdemo"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MAPDEMO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Map.MinZoom < 0 || c.Map.MaxZoom > 22 || c.Map.MinZoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Errorf("map zoom range [%d, %d] is invalid", c.Map.MinZoom, c.Map.MaxZoom))
	}
	if c.Map.UserLocation != "" {
		if _, err := geo.ParseCoordinate(c.Map.UserLocation); err != nil {
			errs = append(errs, fmt.Errorf("map.user_location: %w", err))
		}
	}
	switch c.Pins.TitleMode {
	case "counter", "length":
	default:
		errs = append(errs, fmt.Errorf("pins.title_mode %q must be counter or length", c.Pins.TitleMode))
	}
	if c.Tiles.Workers < 1 {
		errs = append(errs, fmt.Errorf("tiles.workers must be positive, got %d", c.Tiles.Workers))
	}
	if c.Tiles.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("tiles.cache_size must be positive, got %d", c.Tiles.CacheSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
