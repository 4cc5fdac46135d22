package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateGIF(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.FFmpeg == "" {
		return fmt.Errorf("tools.ffmpeg must be set")
	}
	if c.Tools.FFprobe == "" {
		return fmt.Errorf("tools.ffprobe must be set")
	}
	if c.Tools.RenderTimeout <= 0 {
		return fmt.Errorf("tools.render_timeout must be positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FPS <= 0 || c.Render.FPS > 240 {
		return fmt.Errorf("render.fps must be between 1 and 240, got %d", c.Render.FPS)
	}
	if strings.ContainsAny(c.Render.PixelFormat, " \t") {
		return fmt.Errorf("render.pixel_format must be a single token, got %q", c.Render.PixelFormat)
	}
	return nil
}

func (c *Config) validateGIF() error {
	if c.GIF.FPS <= 0 || c.GIF.FPS > 100 {
		return fmt.Errorf("gif.fps must be between 1 and 100, got %d", c.GIF.FPS)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
