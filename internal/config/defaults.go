package config

const (
	defaultVideosDir   = "~/.local/share/framelab/videos"
	defaultFramesDir   = "~/.local/share/framelab/frames"
	defaultTablesDir   = "~/.local/share/framelab/tables"
	defaultDatasetsDir = "~/.local/share/framelab/datasets"
	defaultLogDir      = "~/.local/share/framelab/logs"
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultFrameSuffix = ".png"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VideosDir:   defaultVideosDir,
			FramesDir:   defaultFramesDir,
			TablesDir:   defaultTablesDir,
			DatasetsDir: defaultDatasetsDir,
			LogDir:      defaultLogDir,
		},
		Extract: Extract{
			FFmpegBinary:  defaultFFmpeg,
			FFprobeBinary: defaultFFprobe,
			FrameSuffix:   defaultFrameSuffix,
			FastCount:     true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
