// Package config loads the optional firrtl.yaml file that tunes the CLI and
// the language server.
//
// A configuration file looks like:
//
//	lexer:
//	  flush_dedents: true
//	log:
//	  verbosity: 1
//	  file: ""
//	color: auto
//
// Every key is optional. Missing keys keep the values from Default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"firrtl/internal/lexer"
)

// FileName is the name searched for by Find.
const FileName = "firrtl.yaml"

// Color modes accepted by the color key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level firrtl.yaml configuration.
type Config struct {
	Lexer LexerConfig `yaml:"lexer"`
	Log   LogConfig   `yaml:"log"`

	// Color selects coloured diagnostics: auto, always or never.
	Color string `yaml:"color,omitempty"`
}

// LexerConfig holds the options passed to the token stream.
type LexerConfig struct {
	// FlushDedents closes every open indentation level at end of input.
	FlushDedents bool `yaml:"flush_dedents"`
}

// LogConfig is handed to commonlog.Configure.
type LogConfig struct {
	Verbosity int `yaml:"verbosity"`

	// File is the log path. Empty logs to stderr.
	File string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Lexer: LexerConfig{FlushDedents: true},
		Log:   LogConfig{Verbosity: 1},
		Color: ColorAuto,
	}
}

// Load reads and parses a firrtl.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses firrtl.yaml content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find searches for firrtl.yaml starting from dir and walking up to parent
// directories. It returns an empty path and nil error when none exists.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve loads the file at path, or the nearest firrtl.yaml above dir when
// path is empty, falling back to Default.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		found, err := Find(dir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color: unknown mode %q (want auto, always or never)", path, c.Color)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("%s: log.verbosity: must not be negative, got %d", path, c.Log.Verbosity)
	}
	return nil
}

// UseColor reports whether output written to fd should be coloured.
func (c *Config) UseColor(fd uintptr) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// LexerOptions translates the lexer section into token stream options.
func (c *Config) LexerOptions() []lexer.Option {
	var opts []lexer.Option
	if c.Lexer.FlushDedents {
		opts = append(opts, lexer.WithDedentFlush())
	}
	return opts
}
