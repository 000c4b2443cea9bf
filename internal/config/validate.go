package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSorter(); err != nil {
		return err
	}
	if err := c.validateExtensions(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSorter() error {
	if err := validateBucketName("sorter.duplicates_dir", c.Sorter.DuplicatesDir); err != nil {
		return err
	}
	if err := validateBucketName("sorter.no_date_dir", c.Sorter.NoDateDir); err != nil {
		return err
	}
	if c.Sorter.DuplicatesDir == c.Sorter.NoDateDir {
		return errors.New("sorter.duplicates_dir and sorter.no_date_dir must differ")
	}
	return nil
}

func validateBucketName(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be set", key)
	}
	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s must be a single path element, got %q", key, value)
	}
	return nil
}

func (c *Config) validateExtensions() error {
	if len(c.Extensions.Image)+len(c.Extensions.Video) == 0 {
		return errors.New("extensions: at least one image or video extension must be configured")
	}
	return nil
}
