package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid config")

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// Validate checks the config for values the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig))
	}
	if !contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("%w: log.level %q (want one of %s)",
			ErrInvalidConfig, c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if !contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("%w: log.format %q (want one of %s)",
			ErrInvalidConfig, c.Log.Format, strings.Join(validFormats, ", ")))
	}

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
