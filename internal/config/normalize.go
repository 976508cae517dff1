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
	c.normalizeEngine()
	c.normalizeConversion()
	c.normalizeLogging()
	c.normalizeNotifications()
	c.normalizePresets()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		if value, ok := os.LookupEnv("IMG2GIF_WORK_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.WorkDir = strings.TrimSpace(value)
		} else {
			c.Paths.WorkDir = defaultWorkDir()
		}
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.FFmpegBinary = strings.TrimSpace(c.Engine.FFmpegBinary)
	if c.Engine.FFmpegBinary == "" {
		if value, ok := os.LookupEnv("IMG2GIF_FFMPEG"); ok && strings.TrimSpace(value) != "" {
			c.Engine.FFmpegBinary = strings.TrimSpace(value)
		} else {
			c.Engine.FFmpegBinary = defaultFFmpegBinary
		}
	}
	c.Engine.FFprobeBinary = strings.TrimSpace(c.Engine.FFprobeBinary)
	if c.Engine.FFprobeBinary == "" {
		c.Engine.FFprobeBinary = defaultFFprobeBinary
	}
	c.Engine.IntermediateName = strings.TrimSpace(c.Engine.IntermediateName)
	if c.Engine.IntermediateName == "" {
		c.Engine.IntermediateName = defaultIntermediateName
	}
	c.Engine.IntermediateCodec = strings.TrimSpace(c.Engine.IntermediateCodec)
	if c.Engine.IntermediateCodec == "" {
		c.Engine.IntermediateCodec = defaultIntermediateCodec
	}
	c.Engine.PadColor = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Engine.PadColor), "#"))
	if c.Engine.PadColor == "" {
		c.Engine.PadColor = defaultPadColor
	}
}

func (c *Config) normalizeConversion() {
	c.Conversion.DefaultFormat = strings.TrimSpace(c.Conversion.DefaultFormat)
	if c.Conversion.DefaultFormat == "" {
		c.Conversion.DefaultFormat = defaultFormat
	}
	if c.Conversion.MaxFileSizeMB == 0 {
		c.Conversion.MaxFileSizeMB = defaultMaxFileSizeMB
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

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds == 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNotifyTimeout
	}
}

func (c *Config) normalizePresets() {
	for i := range c.Presets {
		p := &c.Presets[i]
		p.ID = strings.TrimSpace(p.ID)
		p.Label = strings.TrimSpace(p.Label)
		p.Ext = strings.TrimPrefix(strings.TrimSpace(p.Ext), ".")
		p.MIMEType = strings.TrimSpace(p.MIMEType)
	}
}
