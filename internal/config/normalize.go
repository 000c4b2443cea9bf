package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSorter()
	c.normalizeExtensions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSorter() {
	c.Sorter.DuplicatesDir = strings.TrimSpace(c.Sorter.DuplicatesDir)
	if c.Sorter.DuplicatesDir == "" {
		c.Sorter.DuplicatesDir = defaultDuplicatesDir
	}
	c.Sorter.NoDateDir = strings.TrimSpace(c.Sorter.NoDateDir)
	if c.Sorter.NoDateDir == "" {
		c.Sorter.NoDateDir = defaultNoDateDir
	}

	parts := make([]string, 0, len(c.Sorter.ExcludeParts))
	seen := make(map[string]struct{}, len(c.Sorter.ExcludeParts))
	for _, part := range c.Sorter.ExcludeParts {
		normalized := strings.ToLower(strings.TrimSpace(part))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		parts = append(parts, normalized)
	}
	c.Sorter.ExcludeParts = parts
}

func (c *Config) normalizeExtensions() {
	c.Extensions.Image = normalizeExtensionList(c.Extensions.Image)
	c.Extensions.Video = normalizeExtensionList(c.Extensions.Video)
	c.Extensions.EXIF = normalizeExtensionList(c.Extensions.EXIF)
}

func normalizeExtensionList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
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
