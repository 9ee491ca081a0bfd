// Package config loads the service configuration from an optional TOML file.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mcuadros/go-defaults"

	"github.com/ayusman/signbridge/internal/detector"
)

// Config is the top-level service configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Detector Detector `toml:"detector"`
	History  History  `toml:"history"`
	Log      Log      `toml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr          string `toml:"addr" default:"0.0.0.0:5000"`
	AllowedOrigin string `toml:"allowed_origin" default:"http://127.0.0.1:5500"`
	StaticDir     string `toml:"static_dir" default:"."`
}

// Detector configures the MediaPipe worker pool.
type Detector struct {
	Python                 string  `toml:"python"`
	Script                 string  `toml:"script"`
	MaxHands               int     `toml:"max_hands" default:"2"`
	MinDetectionConfidence float64 `toml:"min_detection_confidence" default:"0.7"`
	MinTrackingConfidence  float64 `toml:"min_tracking_confidence" default:"0.5"`
	StaticImageMode        bool    `toml:"static_image_mode"`
	Workers                int     `toml:"workers" default:"1"`
	IdleTimeoutSeconds     int     `toml:"idle_timeout_seconds" default:"30"`
}

// History configures the detection journal. An empty Path disables it.
type History struct {
	Path string `toml:"path"`
}

// Log configures rotated log files. An empty Dir logs to stderr only.
type Log struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	defaults.SetDefaults(c)
	return c
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges that the detector and listener depend on.
func (c *Config) Validate() error {
	d := c.Detector
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("server.addr must not be empty")
	case d.MaxHands < 1:
		return fmt.Errorf("detector.max_hands must be at least 1, got %d", d.MaxHands)
	case d.MinDetectionConfidence < 0 || d.MinDetectionConfidence > 1:
		return fmt.Errorf("detector.min_detection_confidence must be within [0, 1], got %v", d.MinDetectionConfidence)
	case d.MinTrackingConfidence < 0 || d.MinTrackingConfidence > 1:
		return fmt.Errorf("detector.min_tracking_confidence must be within [0, 1], got %v", d.MinTrackingConfidence)
	case d.Workers < 1:
		return fmt.Errorf("detector.workers must be at least 1, got %d", d.Workers)
	case d.IdleTimeoutSeconds < 0:
		return fmt.Errorf("detector.idle_timeout_seconds must not be negative, got %d", d.IdleTimeoutSeconds)
	}
	return nil
}

// DetectorConfig converts the [detector] section for detector.NewMediaPipePool.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.Detector.MaxHands,
		MinConfidence:   c.Detector.MinDetectionConfidence,
		MinTrackingConf: c.Detector.MinTrackingConfidence,
		StaticImageMode: c.Detector.StaticImageMode,
		Python:          c.Detector.Python,
		Script:          c.Detector.Script,
		IdleTimeout:     time.Duration(c.Detector.IdleTimeoutSeconds) * time.Second,
	}
}
