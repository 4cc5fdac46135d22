package config

const (
	defaultDataDir       = "~/.local/share/apsdir"
	defaultLogDir        = "~/.local/share/apsdir/logs"
	defaultFFmpeg        = "ffmpeg"
	defaultFFprobe       = "ffprobe"
	defaultViewer        = "napari"
	defaultRenderTimeout = 600
	defaultRenderFPS     = 10
	defaultPixelFormat   = "yuv420p"
	defaultMinFreeMiB    = 256
	defaultGIFFPS        = 10
	defaultGIFMaxWidth   = 0
	defaultHistoryKeep   = 500
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:        defaultFFmpeg,
			FFprobe:       defaultFFprobe,
			Viewer:        defaultViewer,
			RenderTimeout: defaultRenderTimeout,
		},
		Render: Render{
			FPS:         defaultRenderFPS,
			PixelFormat: defaultPixelFormat,
			EvenCrop:    true,
			MinFreeMiB:  defaultMinFreeMiB,
		},
		GIF: GIF{
			FPS:      defaultGIFFPS,
			MaxWidth: defaultGIFMaxWidth,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
