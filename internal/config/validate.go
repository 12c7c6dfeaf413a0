package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateRemote(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.VideosDir == "" {
		return errors.New("paths.videos_dir must be set")
	}
	if c.Paths.FramesDir == "" {
		return errors.New("paths.frames_dir must be set")
	}
	if c.Paths.TablesDir == "" {
		return errors.New("paths.tables_dir must be set")
	}
	if c.Paths.DatasetsDir == "" {
		return errors.New("paths.datasets_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateExtract() error {
	if !strings.HasPrefix(c.Extract.FrameSuffix, ".") {
		return fmt.Errorf("extract.frame_suffix %q must start with a dot", c.Extract.FrameSuffix)
	}
	for _, size := range c.Extract.ChunkSizes {
		if size < 1 {
			return fmt.Errorf("extract.chunk_sizes entries must be >= 1, got %d", size)
		}
	}
	return nil
}

func (c *Config) validateRemote() error {
	if !c.Remote.Enabled {
		return nil
	}
	if c.Remote.Endpoint == "" {
		return errors.New("remote.endpoint must be set when remote.enabled is true")
	}
	if c.Remote.Bucket == "" {
		return errors.New("remote.bucket must be set when remote.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
