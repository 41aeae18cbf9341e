// Package config loads the viewer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML settings file. Every section is optional; missing fields
// keep their defaults.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Assets     AssetsConfig     `yaml:"assets"`
	Engine     EngineConfig     `yaml:"engine"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// CameraConfig holds the initial orbit state and manipulator tuning. Angles are in degrees.
type CameraConfig struct {
	Pan             float32 `yaml:"pan"`
	Tilt            float32 `yaml:"tilt"`
	Radius          float32 `yaml:"radius"`
	Sensitivity     float32 `yaml:"sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MinTilt         float32 `yaml:"min_tilt"`
	MaxTilt         float32 `yaml:"max_tilt"`
	MinRadius       float32 `yaml:"min_radius"`
	MaxRadius       float32 `yaml:"max_radius"` // 0 = unbounded
}

type ProjectionConfig struct {
	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// AssetConfig names a mesh and the texture drawn on it.
type AssetConfig struct {
	Mesh    string `yaml:"mesh"`
	Texture string `yaml:"texture"`
}

type AssetsConfig struct {
	Crate   AssetConfig `yaml:"crate"`
	Chassis AssetConfig `yaml:"chassis"`
}

type EngineConfig struct {
	Profiling  bool `yaml:"profiling"`
	FrameLimit int  `yaml:"frame_limit"` // frames per second, 0 = uncapped
	Workers    int  `yaml:"workers"`     // asset loading workers
}

// Default returns the built-in settings used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Tank Assignment",
			Width:  720,
			Height: 720,
		},
		Camera: CameraConfig{
			Radius:          2,
			Sensitivity:     0.5,
			ZoomSensitivity: 0.01,
			MinTilt:         -89,
			MaxTilt:         89,
			MinRadius:       0.01,
		},
		Projection: ProjectionConfig{
			Fov:  90,
			Near: 0.0001,
			Far:  100,
		},
		Assets: AssetsConfig{
			Crate:   AssetConfig{Mesh: "models/test_cube.obj", Texture: "models/Crate.bmp"},
			Chassis: AssetConfig{Mesh: "models/chassis.obj", Texture: "models/humvee.bmp"},
		},
		Engine: EngineConfig{
			FrameLimit: 60,
			Workers:    2,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an error.
//
// Parameters:
//   - path: location of the YAML file
//
// Returns:
//   - Config: the merged settings
//   - error: read or parse failures, or common.ErrInvalidArgument from Validate
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks every range the viewer depends on.
//
// Returns:
//   - error: common.ErrInvalidArgument describing the first bad field, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case !common.IsFinite(c.Camera.Pan, c.Camera.Tilt, c.Camera.Radius):
		return invalid("camera pan/tilt/radius must be finite")
	case c.Camera.Radius <= 0:
		return invalid("camera radius %v must be positive", c.Camera.Radius)
	case c.Camera.MinTilt > c.Camera.MaxTilt || c.Camera.MinTilt <= -90 || c.Camera.MaxTilt >= 90:
		return invalid("camera tilt bounds [%v, %v] must be ordered and inside (-90, 90)", c.Camera.MinTilt, c.Camera.MaxTilt)
	case c.Camera.MinRadius <= 0:
		return invalid("camera min_radius %v must be positive", c.Camera.MinRadius)
	case c.Camera.MaxRadius != 0 && c.Camera.MaxRadius < c.Camera.MinRadius:
		return invalid("camera max_radius %v below min_radius %v", c.Camera.MaxRadius, c.Camera.MinRadius)
	case c.Camera.Sensitivity <= 0 || c.Camera.ZoomSensitivity <= 0:
		return invalid("camera sensitivities must be positive")
	case c.Projection.Fov <= 0 || c.Projection.Fov >= 180:
		return invalid("projection fov %v outside (0, 180)", c.Projection.Fov)
	case c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near:
		return invalid("projection clip planes near %v far %v", c.Projection.Near, c.Projection.Far)
	case c.Assets.Crate.Mesh == "" || c.Assets.Chassis.Mesh == "":
		return invalid("assets need a crate and a chassis mesh")
	case c.Engine.FrameLimit < 0:
		return invalid("engine frame_limit %d must not be negative", c.Engine.FrameLimit)
	case c.Engine.Workers <= 0:
		return invalid("engine workers %d must be positive", c.Engine.Workers)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: "+format+": %w", append(args, common.ErrInvalidArgument)...)
}
