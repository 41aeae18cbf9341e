package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Window.Title != "Tank Assignment" || cfg.Window.Width != 720 || cfg.Window.Height != 720 {
		t.Errorf("expected a 720x720 \"Tank Assignment\" window, got %+v", cfg.Window)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := []byte(`
window:
  title: Garage
  width: 1280
camera:
  pan: 45
  tilt: 15
  radius: 6
  max_radius: 20
projection:
  fov: 60
assets:
  chassis:
    mesh: trucks/chassis.obj
    texture: trucks/humvee.bmp
engine:
  profiling: true
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "Garage" || cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("unexpected window %+v", cfg.Window)
	}
	if cfg.Camera.Pan != 45 || cfg.Camera.Tilt != 15 || cfg.Camera.Radius != 6 || cfg.Camera.MaxRadius != 20 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Camera.Sensitivity != 0.5 {
		t.Errorf("expected default sensitivity to survive, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Projection.Fov != 60 || cfg.Projection.Far != 100 {
		t.Errorf("unexpected projection %+v", cfg.Projection)
	}
	if cfg.Assets.Chassis.Mesh != "trucks/chassis.obj" || cfg.Assets.Crate.Mesh != "models/test_cube.obj" {
		t.Errorf("unexpected assets %+v", cfg.Assets)
	}
	if !cfg.Engine.Profiling || cfg.Engine.FrameLimit != 60 {
		t.Errorf("unexpected engine %+v", cfg.Engine)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero width":         "window: {width: 0}",
		"negative radius":    "camera: {radius: -1}",
		"tilt bound at pole": "camera: {max_tilt: 90}",
		"inverted tilt":      "camera: {min_tilt: 10, max_tilt: -10}",
		"max below min":      "camera: {min_radius: 2, max_radius: 1}",
		"zero sensitivity":   "camera: {sensitivity: 0}",
		"flat fov":           "projection: {fov: 180}",
		"far before near":    "projection: {near: 5, far: 1}",
		"missing crate mesh": "assets: {crate: {mesh: ''}}",
		"negative fps cap":   "engine: {frame_limit: -1}",
		"no loader workers":  "engine: {workers: 0}",
		"non-finite tilt":    "camera: {tilt: .nan}",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(doc))
			if !errors.Is(err, common.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if cfg != Default() {
				t.Errorf("expected defaults on error, got %+v", cfg)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("window: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("syntax errors should not be reported as invalid values: %v", err)
	}
}
