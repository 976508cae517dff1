package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateConversion()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.HistoryDB == "" {
		return errors.New("paths.history_db must be set")
	}
	return nil
}

func (c *Config) validateEngine() error {
	name := c.Engine.IntermediateName
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("engine.intermediate_name %q must be a plain file name", name)
	}
	if filepath.Ext(name) == "" {
		return fmt.Errorf("engine.intermediate_name %q needs a container extension", name)
	}
	if !validPadColor(c.Engine.PadColor) {
		return fmt.Errorf("engine.pad_color %q must be 6 or 8 hex digits", c.Engine.PadColor)
	}
	if c.Engine.LockTimeoutSeconds < 0 {
		return errors.New("engine.lock_timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeoutSeconds < 0 {
		return errors.New("notifications.request_timeout_seconds must be positive")
	}
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	u, err := url.Parse(topic)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic %q must be an http(s) URL", topic)
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.MaxFileSizeMB < 0 {
		return errors.New("conversion.max_file_size_mb must be positive")
	}
	catalog, err := c.Catalog()
	if err != nil {
		return err
	}
	if _, err := catalog.Format(c.Conversion.DefaultFormat); err != nil {
		return fmt.Errorf("conversion.default_format: %w", err)
	}
	return nil
}

func validPadColor(value string) bool {
	if len(value) != 6 && len(value) != 8 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
