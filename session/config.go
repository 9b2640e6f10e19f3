package session

import (
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Default configuration values, matching the documented preference defaults.
const (
	DefaultPanSensitivity      = 0.001
	DefaultZoomSensitivity     = 0.04
	DefaultOrbitSensitivity    = 0.004
	DefaultMinZoomDistance     = 0.01
	DefaultMaxZoomDistance     = 200.0
	DefaultOrbitElevationLimit = 85.0
)

// Config is the immutable-during-session set of tunables, supplied by the
// host's preferences store at session start and read-only thereafter.
// Each field has a documented clamped range applied by Clamped.
type Config struct {
	// PanSensitivity scales pan drag deltas. Range [0.0001, 0.05].
	PanSensitivity float32

	// ZoomSensitivity scales zoom drag deltas. Range [0.0001, 0.1].
	ZoomSensitivity float32

	// OrbitSensitivity scales orbit drag deltas in radians per pixel.
	// Range [0.0001, 0.05].
	OrbitSensitivity float32

	// InvertHorizontal flips the horizontal drag direction.
	InvertHorizontal bool

	// InvertVertical flips the vertical drag direction. Does not affect zoom.
	InvertVertical bool

	// MinZoomDistance is the closest the camera can get to the focus point.
	// Range [0.0001, 5].
	MinZoomDistance float32

	// MaxZoomDistance is the farthest the camera can get from the focus
	// point. Range [10, 1000].
	MaxZoomDistance float32

	// OrbitElevationLimitDegrees is the maximum vertical angle for orbiting,
	// in degrees from the horizon (e.g. 85 is almost straight down).
	// Range [45, 89].
	OrbitElevationLimitDegrees float32
}

// DefaultConfig returns the default tunables.
//
// Returns:
//   - Config: defaults for every field
func DefaultConfig() Config {
	return Config{
		PanSensitivity:             DefaultPanSensitivity,
		ZoomSensitivity:            DefaultZoomSensitivity,
		OrbitSensitivity:           DefaultOrbitSensitivity,
		MinZoomDistance:            DefaultMinZoomDistance,
		MaxZoomDistance:            DefaultMaxZoomDistance,
		OrbitElevationLimitDegrees: DefaultOrbitElevationLimit,
	}
}

// Clamped returns a copy with every tunable clamped to its documented range.
// Sessions apply this once at start so out-of-range preference values can
// never produce invalid state.
//
// Returns:
//   - Config: the clamped copy
func (c Config) Clamped() Config {
	c.PanSensitivity = mgl32.Clamp(c.PanSensitivity, 0.0001, 0.05)
	c.ZoomSensitivity = mgl32.Clamp(c.ZoomSensitivity, 0.0001, 0.1)
	c.OrbitSensitivity = mgl32.Clamp(c.OrbitSensitivity, 0.0001, 0.05)
	c.MinZoomDistance = mgl32.Clamp(c.MinZoomDistance, 0.0001, 5.0)
	c.MaxZoomDistance = mgl32.Clamp(c.MaxZoomDistance, 10.0, 1000.0)
	c.OrbitElevationLimitDegrees = mgl32.Clamp(c.OrbitElevationLimitDegrees, 45.0, 89.0)
	return c
}

// ConfigFromEnv returns DefaultConfig overridden by SLCAM_* environment
// variables where set. Unparseable values are ignored and the default kept.
//
// Recognized variables: SLCAM_PAN_SENSITIVITY, SLCAM_ZOOM_SENSITIVITY,
// SLCAM_ORBIT_SENSITIVITY, SLCAM_INVERT_HORIZONTAL, SLCAM_INVERT_VERTICAL,
// SLCAM_MIN_ZOOM_DISTANCE, SLCAM_MAX_ZOOM_DISTANCE, SLCAM_ORBIT_ELEVATION_LIMIT.
//
// Returns:
//   - Config: defaults with environment overrides applied
func ConfigFromEnv() Config {
	c := DefaultConfig()
	envFloat("SLCAM_PAN_SENSITIVITY", &c.PanSensitivity)
	envFloat("SLCAM_ZOOM_SENSITIVITY", &c.ZoomSensitivity)
	envFloat("SLCAM_ORBIT_SENSITIVITY", &c.OrbitSensitivity)
	envBool("SLCAM_INVERT_HORIZONTAL", &c.InvertHorizontal)
	envBool("SLCAM_INVERT_VERTICAL", &c.InvertVertical)
	envFloat("SLCAM_MIN_ZOOM_DISTANCE", &c.MinZoomDistance)
	envFloat("SLCAM_MAX_ZOOM_DISTANCE", &c.MaxZoomDistance)
	envFloat("SLCAM_ORBIT_ELEVATION_LIMIT", &c.OrbitElevationLimitDegrees)
	return c
}

func envFloat(name string, dst *float32) {
	if raw := os.Getenv(name); raw != "" {
		if v, err := strconv.ParseFloat(raw, 32); err == nil {
			*dst = float32(v)
		}
	}
}

func envBool(name string, dst *bool) {
	if raw := os.Getenv(name); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			*dst = v
		}
	}
}
