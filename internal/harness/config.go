package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes how the harness reaches the reference tool.
type Config struct {
	// Tool is the command prefix for the reference tool (e.g. "gm").
	// It is spliced into shell command lines unquoted, so it may carry
	// extra words.
	Tool string `yaml:"tool"`

	// Shell runs the reference tool command lines with "-c".
	Shell string `yaml:"shell"`

	// Dir is the working directory for fixtures and outputs.
	Dir string `yaml:"dir"`
}

// Defaults used when a field is left empty.
const (
	DefaultTool  = "gm"
	DefaultShell = "/bin/sh"
	DefaultDir   = "."
)

// DefaultConfig returns a Config using GraphicsMagick in the current directory.
func DefaultConfig() Config {
	return Config{
		Tool:  DefaultTool,
		Shell: DefaultShell,
		Dir:   DefaultDir,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg.withDefaults(), nil
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Tool == "" {
		c.Tool = d.Tool
	}
	if c.Shell == "" {
		c.Shell = d.Shell
	}
	if c.Dir == "" {
		c.Dir = d.Dir
	}
	return c
}
