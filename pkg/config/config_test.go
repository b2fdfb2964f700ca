package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Thresholds.Low != 3 || cfg.Thresholds.High != 8 {
		t.Errorf("default thresholds = %+v, want {3 8}", cfg.Thresholds)
	}
	if cfg.Camera.MinZoom >= cfg.Camera.MaxZoom {
		t.Errorf("default zoom bounds inverted: %+v", cfg.Camera)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgview.toml")
	content := `
[thresholds]
low = 2
high = 12

[camera]
max_zoom = 4.0

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Thresholds.Low != 2 || cfg.Thresholds.High != 12 {
		t.Errorf("thresholds = %+v, want {2 12}", cfg.Thresholds)
	}
	if cfg.Camera.MaxZoom != 4.0 {
		t.Errorf("max zoom = %v, want 4.0", cfg.Camera.MaxZoom)
	}
	// Untouched sections keep their defaults.
	if cfg.Camera.MinZoom != Default().Camera.MinZoom {
		t.Errorf("min zoom = %v, want default", cfg.Camera.MinZoom)
	}
	if cfg.Tree.NodeWidth != 180 {
		t.Errorf("tree node width = %v, want 180", cfg.Tree.NodeWidth)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr = %s, want :9090", cfg.Server.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("want FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("thresholds = {"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("want INVALID_FORMAT, got %v", err)
	}
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgview.toml")
	content := "[thresholds]\nlow = 10\nhigh = 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidThreshold) {
		t.Errorf("want INVALID_THRESHOLD, got %v", err)
	}
}

func TestCameraConfigConversion(t *testing.T) {
	cfg := Default()
	cam := cfg.CameraConfig()
	if cam.MinZoom != cfg.Camera.MinZoom || cam.MaxZoom != cfg.Camera.MaxZoom {
		t.Errorf("conversion lost zoom bounds: %+v", cam)
	}
}
