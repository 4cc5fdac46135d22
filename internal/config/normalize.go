package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeRender()
	c.normalizeGIF()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
	c.Tools.Viewer = strings.TrimSpace(c.Tools.Viewer)
	if c.Tools.Viewer == "" {
		if value, ok := os.LookupEnv("APSDIR_VIEWER"); ok && strings.TrimSpace(value) != "" {
			c.Tools.Viewer = strings.TrimSpace(value)
		} else {
			c.Tools.Viewer = defaultViewer
		}
	}
	if c.Tools.RenderTimeout <= 0 {
		c.Tools.RenderTimeout = defaultRenderTimeout
	}
}

func (c *Config) normalizeRender() {
	if c.Render.FPS <= 0 {
		c.Render.FPS = defaultRenderFPS
	}
	c.Render.PixelFormat = strings.TrimSpace(c.Render.PixelFormat)
	if c.Render.PixelFormat == "" {
		c.Render.PixelFormat = defaultPixelFormat
	}
	if c.Render.MinFreeMiB < 0 {
		c.Render.MinFreeMiB = 0
	}
}

func (c *Config) normalizeGIF() {
	if c.GIF.FPS <= 0 {
		c.GIF.FPS = defaultGIFFPS
	}
	if c.GIF.MaxWidth < 0 {
		c.GIF.MaxWidth = 0
	}
}

func (c *Config) normalizeHistory() {
	if c.History.Keep <= 0 {
		c.History.Keep = defaultHistoryKeep
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
