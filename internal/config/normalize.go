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
	c.normalizeExtract()
	c.normalizeRemote()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.VideosDir, err = expandPath(c.Paths.VideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if c.Paths.FramesDir, err = expandPath(c.Paths.FramesDir); err != nil {
		return fmt.Errorf("paths.frames_dir: %w", err)
	}
	if c.Paths.TablesDir, err = expandPath(c.Paths.TablesDir); err != nil {
		return fmt.Errorf("paths.tables_dir: %w", err)
	}
	if c.Paths.DatasetsDir, err = expandPath(c.Paths.DatasetsDir); err != nil {
		return fmt.Errorf("paths.datasets_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtract() {
	c.Extract.FFmpegBinary = strings.TrimSpace(c.Extract.FFmpegBinary)
	if c.Extract.FFmpegBinary == "" {
		c.Extract.FFmpegBinary = defaultFFmpeg
	}
	c.Extract.FFprobeBinary = strings.TrimSpace(c.Extract.FFprobeBinary)
	if c.Extract.FFprobeBinary == "" {
		c.Extract.FFprobeBinary = defaultFFprobe
	}
	c.Extract.FrameSuffix = strings.TrimSpace(c.Extract.FrameSuffix)
	if c.Extract.FrameSuffix == "" {
		c.Extract.FrameSuffix = defaultFrameSuffix
	}
}

func (c *Config) normalizeRemote() {
	c.Remote.Endpoint = strings.TrimSpace(c.Remote.Endpoint)
	c.Remote.Bucket = strings.TrimSpace(c.Remote.Bucket)
	c.Remote.AccessKey = strings.TrimSpace(c.Remote.AccessKey)
	if c.Remote.AccessKey == "" {
		if value, ok := os.LookupEnv("FRAMELAB_S3_ACCESS_KEY"); ok {
			c.Remote.AccessKey = strings.TrimSpace(value)
		}
	}
	c.Remote.SecretKey = strings.TrimSpace(c.Remote.SecretKey)
	if c.Remote.SecretKey == "" {
		if value, ok := os.LookupEnv("FRAMELAB_S3_SECRET_KEY"); ok {
			c.Remote.SecretKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
