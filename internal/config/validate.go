package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVAD(); err != nil {
		return err
	}
	if err := c.validateClips(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVAD() error {
	switch c.VAD.FrameMs {
	case 10, 20, 30:
	default:
		return fmt.Errorf("vad.frame_ms must be 10, 20, or 30, got %d", c.VAD.FrameMs)
	}
	if c.VAD.PaddingMs < c.VAD.FrameMs {
		return fmt.Errorf("vad.padding_ms must be at least one frame (%d ms), got %d", c.VAD.FrameMs, c.VAD.PaddingMs)
	}
	switch c.VAD.Engine {
	case "webrtc", "energy":
	default:
		return fmt.Errorf("vad.engine must be \"webrtc\" or \"energy\", got %q", c.VAD.Engine)
	}
	if c.VAD.Aggressiveness < 0 || c.VAD.Aggressiveness > 3 {
		return fmt.Errorf("vad.aggressiveness must be between 0 and 3, got %d", c.VAD.Aggressiveness)
	}
	if c.VAD.EnergyThreshold < 0 || c.VAD.EnergyThreshold > 1 {
		return errors.New("vad.energy_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateClips() error {
	if c.Clips.MinSeconds < 0 {
		return errors.New("clips.min_seconds must not be negative")
	}
	if c.Clips.MaxSeconds <= 0 {
		return errors.New("clips.max_seconds must be positive")
	}
	if c.Clips.MinSeconds > c.Clips.MaxSeconds {
		return fmt.Errorf("clips.min_seconds (%g) must not exceed clips.max_seconds (%g)", c.Clips.MinSeconds, c.Clips.MaxSeconds)
	}
	if c.Clips.StartPaddingSeconds < 0 || c.Clips.EndPaddingSeconds < 0 {
		return errors.New("clip padding seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
