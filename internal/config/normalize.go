package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVAD()
	c.normalizeClips()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ClipsDir, err = expandPath(c.Paths.ClipsDir); err != nil {
		return fmt.Errorf("paths.clips_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVAD() {
	c.VAD.Engine = strings.ToLower(strings.TrimSpace(c.VAD.Engine))
	if c.VAD.Engine == "" {
		c.VAD.Engine = defaultEngine
	}
	if c.VAD.FrameMs == 0 {
		c.VAD.FrameMs = defaultFrameMs
	}
	if c.VAD.PaddingMs == 0 {
		c.VAD.PaddingMs = defaultPaddingMs
	}
}

func (c *Config) normalizeClips() {
	c.Clips.NamePrefix = strings.TrimSpace(c.Clips.NamePrefix)
	if c.Clips.NamePrefix == "" {
		c.Clips.NamePrefix = defaultNamePrefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
