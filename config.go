package carousel

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the engine. All fields are plain knobs; a
// zero Config is not usable, start from DefaultConfig.
type Config struct {
	// Ring geometry.
	Radius     float64 `yaml:"radius"`
	ItemWidth  float64 `yaml:"item_width"`
	ItemHeight float64 `yaml:"item_height"`
	GapAngle   float64 `yaml:"gap_angle"`

	// Spin.
	BaseSpin        float64 `yaml:"base_spin"`         // idle spin, rad/s
	ScrollSpinScale float64 `yaml:"scroll_spin_scale"` // wheel deltaY -> rad/s while over the ring
	DragScale       float64 `yaml:"drag_scale"`        // multiplier on drag rotation
	FlingScale      float64 `yaml:"fling_scale"`       // multiplier on release velocity
	MaxSpinVelocity float64 `yaml:"max_spin_velocity"` // |velocity| clamp, 0 disables
	Damping         float64 `yaml:"damping"`           // per-tick velocity multiplier
	FrozenDecay     float64 `yaml:"frozen_decay"`      // extra per-tick multiplier while frozen
	PixelsPerRadian float64 `yaml:"pixels_per_radian"` // drag conversion without a Projector

	// Focus field and easing.
	FocusScale         float64 `yaml:"focus_scale"`
	AdjacentFactor     float64 `yaml:"adjacent_factor"`
	InfluenceNeighbors int     `yaml:"influence_neighbors"`
	ScaleLerp          float64 `yaml:"scale_lerp"` // per-second easing rate for scale
	ColorLerp          float64 `yaml:"color_lerp"` // per-second easing rate for saturation/lift
	GrayLift           float64 `yaml:"gray_lift"`

	// Gestures.
	HoldDuration      time.Duration `yaml:"hold_duration"`
	DragThreshold     float64       `yaml:"drag_threshold"` // pixels
	DragVelocityBlend float64       `yaml:"drag_velocity_blend"`

	// Frame loop and front detection.
	MaxFrameDelta     time.Duration `yaml:"max_frame_delta"`
	FrontPollInterval time.Duration `yaml:"front_poll_interval"`
	AlignThreshold    float64       `yaml:"align_threshold"`

	Camera CameraConfig `yaml:"camera"`
}

// DefaultConfig returns the tuning of the reference gallery.
func DefaultConfig() Config {
	return Config{
		Radius:     42,
		ItemWidth:  12,
		ItemHeight: 8,

		BaseSpin:        0.05,
		ScrollSpinScale: 0.00035,
		DragScale:       1,
		FlingScale:      1,
		MaxSpinVelocity: 2.5,
		Damping:         0.92,
		FrozenDecay:     0.85,
		PixelsPerRadian: 300,

		FocusScale:         1.8,
		AdjacentFactor:     0.7,
		InfluenceNeighbors: 10,
		ScaleLerp:          18,
		ColorLerp:          28,
		GrayLift:           0.35,

		HoldDuration:      350 * time.Millisecond,
		DragThreshold:     6,
		DragVelocityBlend: 0.25,

		MaxFrameDelta:     33 * time.Millisecond,
		FrontPollInterval: 200 * time.Millisecond,
		AlignThreshold:    0.9,

		Camera: CameraConfig{
			Position:        Vec3{X: 0, Y: 12, Z: 110},
			FocusDistance:   70,
			MinDistance:     40,
			MaxDistance:     180,
			ZoomStep:        0.05,
			AnimateDuration: 1200 * time.Millisecond,
			SpringFrequency: 6,
			SpringDamping:   1,
			FPS:             60,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig, so a file only needs the
// keys it changes, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse carousel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid carousel config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read carousel config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Radius > 0, "radius must be positive, got %v", c.Radius)
	check(c.ItemWidth > 0 && c.ItemHeight > 0, "item size must be positive, got %vx%v", c.ItemWidth, c.ItemHeight)
	check(c.Damping > 0 && c.Damping <= 1, "damping must be in (0, 1], got %v", c.Damping)
	check(c.FrozenDecay >= 0 && c.FrozenDecay <= 1, "frozen_decay must be in [0, 1], got %v", c.FrozenDecay)
	check(c.MaxSpinVelocity >= 0, "max_spin_velocity must not be negative, got %v", c.MaxSpinVelocity)
	check(c.PixelsPerRadian > 0, "pixels_per_radian must be positive, got %v", c.PixelsPerRadian)
	check(c.FocusScale > 0, "focus_scale must be positive, got %v", c.FocusScale)
	check(c.AdjacentFactor >= 0 && c.AdjacentFactor <= 1, "adjacent_factor must be in [0, 1], got %v", c.AdjacentFactor)
	check(c.InfluenceNeighbors >= 0, "influence_neighbors must not be negative, got %d", c.InfluenceNeighbors)
	check(c.ScaleLerp >= 0 && c.ColorLerp >= 0, "easing rates must not be negative")
	check(c.GrayLift >= 0 && c.GrayLift <= 1, "gray_lift must be in [0, 1], got %v", c.GrayLift)
	check(c.HoldDuration > 0, "hold_duration must be positive, got %v", c.HoldDuration)
	check(c.DragThreshold >= 0, "drag_threshold must not be negative, got %v", c.DragThreshold)
	check(c.DragVelocityBlend > 0 && c.DragVelocityBlend <= 1, "drag_velocity_blend must be in (0, 1], got %v", c.DragVelocityBlend)
	check(c.MaxFrameDelta > 0, "max_frame_delta must be positive, got %v", c.MaxFrameDelta)
	check(c.FrontPollInterval >= 0, "front_poll_interval must not be negative, got %v", c.FrontPollInterval)

	cam := c.Camera
	check(cam.MinDistance > 0 && cam.MinDistance <= cam.MaxDistance,
		"camera distance range invalid: [%v, %v]", cam.MinDistance, cam.MaxDistance)
	check(cam.Position.Len() > 0, "camera position must not be the ring centre")
	check(cam.FocusDistance > 0, "camera focus_distance must be positive, got %v", cam.FocusDistance)
	check(cam.AnimateDuration >= 0, "camera animate_duration must not be negative, got %v", cam.AnimateDuration)
	check(cam.SpringFrequency > 0, "camera spring_frequency must be positive, got %v", cam.SpringFrequency)

	return errors.Join(errs...)
}
