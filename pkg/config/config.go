// Package config loads orgview settings from TOML files. Every field has a
// working default, so a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/org"
	"github.com/matzehuels/orgview/pkg/view"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "orgview.toml"

// Config is the full application configuration.
type Config struct {
	Thresholds org.Thresholds `toml:"thresholds"`
	Camera     Camera         `toml:"camera"`
	Tree       Tree           `toml:"tree"`
	Radial     Radial         `toml:"radial"`
	Cache      Cache          `toml:"cache"`
	Server     Server         `toml:"server"`
}

// Camera configures zoom bounds and panning margins.
type Camera struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
	Margin   float64 `toml:"margin"`
}

// Tree configures tree layout geometry.
type Tree struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	HGap       float64 `toml:"h_gap"`
	VGap       float64 `toml:"v_gap"`
}

// Radial configures radial layout geometry.
type Radial struct {
	MinRing  float64 `toml:"min_ring"`
	NodeSize float64 `toml:"node_size"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	// Backend is "file", "redis", or "none".
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cam := view.DefaultConfig()
	return Config{
		Thresholds: org.DefaultThresholds,
		Camera: Camera{
			MinZoom:  cam.MinZoom,
			MaxZoom:  cam.MaxZoom,
			ZoomStep: cam.ZoomStep,
			Margin:   cam.Margin,
		},
		Tree:   Tree{NodeWidth: 180, NodeHeight: 64, HGap: 24, VGap: 48},
		Radial: Radial{MinRing: 120, NodeSize: 36},
		Cache:  Cache{Backend: "file", Dir: defaultCacheDir()},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads a TOML config file and merges it over the defaults. An empty
// path loads DefaultFileName when it exists, the plain defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFileName); err != nil {
			return cfg, nil
		}
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if err := apperrors.ValidateThresholds(c.Thresholds.Low, c.Thresholds.High); err != nil {
		return err
	}
	if err := apperrors.ValidateZoomRange(c.Camera.MinZoom, c.Camera.MaxZoom); err != nil {
		return err
	}
	return nil
}

// CameraConfig converts the camera section to the view package's config.
func (c Config) CameraConfig() view.Config {
	return view.Config{
		MinZoom:  c.Camera.MinZoom,
		MaxZoom:  c.Camera.MaxZoom,
		ZoomStep: c.Camera.ZoomStep,
		Margin:   c.Camera.Margin,
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".orgview-cache"
	}
	return filepath.Join(base, "orgview")
}
