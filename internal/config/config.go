package config

import (
	"fmt"

	"github.com/ossyrian/wadinfo/internal/output"
)

// Directory views accepted by DirectoryView.
const (
	DirectoryOrdered = "ordered"
	DirectoryKeyed   = "keyed"
)

// Config holds app configuration
type Config struct {
	// Inputs are the WAD files to read, taken from the positional arguments
	Inputs []string `mapstructure:"inputs"`

	// Format selects the summary format (text, table, json, yaml)
	Format string `mapstructure:"format"`

	// ListLumps prints the lump directory below each summary
	ListLumps bool `mapstructure:"lumps"`

	// DirectoryView is "ordered" to list lumps in directory order with
	// duplicates, or "keyed" to list each name once (last entry wins)
	DirectoryView string `mapstructure:"directory"`

	// AllowEmptyNames accepts all-zero lump names instead of rejecting them.
	// Some real-world archives carry such entries.
	AllowEmptyNames bool `mapstructure:"allow_empty_names"`

	// Jobs caps concurrent decodes; 0 means one per CPU
	Jobs int `mapstructure:"jobs"`

	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}

// Validate checks values that flags and config files cannot constrain.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}

	switch c.DirectoryView {
	case "", DirectoryOrdered, DirectoryKeyed:
	default:
		return fmt.Errorf("invalid directory view: %q (valid: %s, %s)",
			c.DirectoryView, DirectoryOrdered, DirectoryKeyed)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs: %d (must be >= 0)", c.Jobs)
	}

	if len(c.Inputs) == 0 {
		return fmt.Errorf("no input files")
	}

	return nil
}

// Keyed reports whether lumps should be listed by name.
func (c *Config) Keyed() bool {
	return c.DirectoryView == DirectoryKeyed
}
