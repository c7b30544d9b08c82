package birch

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Default input settings.
const (
	DefaultMultitapTime     = 0.3  // seconds
	DefaultMultitapDistance = 25.0 // points
)

// InputConfig configures a TouchProcessor.
type InputConfig struct {
	// MultitapTime is the longest gap, in seconds, between two Began samples
	// that still counts as a multi-tap.
	MultitapTime float64 `toml:"multitap_time"`
	// MultitapDistance is the farthest two Began samples may be apart, in
	// points, to count as a multi-tap.
	MultitapDistance float64 `toml:"multitap_distance"`
	// SimulateMultitouch mirrors the mouse pointer into a second touch while
	// Ctrl is held (Shift additionally drags the mirror center).
	SimulateMultitouch bool `toml:"simulate_multitouch"`
}

// DefaultInputConfig returns the default input settings.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		MultitapTime:     DefaultMultitapTime,
		MultitapDistance: DefaultMultitapDistance,
	}
}

// Validate reports the first invalid setting.
func (c InputConfig) Validate() error {
	if c.MultitapTime < 0 {
		return fmt.Errorf("input config: multitap_time must be >= 0, got %v", c.MultitapTime)
	}
	if c.MultitapDistance < 0 {
		return fmt.Errorf("input config: multitap_distance must be >= 0, got %v", c.MultitapDistance)
	}
	return nil
}

// LoadInputConfig parses TOML input settings. Keys missing from data keep
// their default values.
//
//	multitap_time = 0.25
//	multitap_distance = 30
//	simulate_multitouch = true
func LoadInputConfig(data []byte) (InputConfig, error) {
	cfg := DefaultInputConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return InputConfig{}, fmt.Errorf("parse input config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return InputConfig{}, err
	}
	return cfg, nil
}
