package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-enumkeys/internal/generator"
)

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = ".gen-enumkeys.yaml"

// Diagnostic output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config stores CLI options for a generation run. The YAML keys match the
// long flag names.
type Config struct {
	Patterns []string `yaml:"patterns"`
	Types    []string `yaml:"types"`
	Output   string   `yaml:"output"`
	Check    bool     `yaml:"check"`
	Format   string   `yaml:"format"`
	Workers  int      `yaml:"workers"`
	Verbose  bool     `yaml:"verbose"`

	ConfigFile  string `yaml:"-"`
	ShowVersion bool   `yaml:"-"`
}

// DefaultConfig returns the configuration used when neither flags nor a
// config file say otherwise.
func DefaultConfig() *Config {
	return &Config{
		Patterns:   []string{"."},
		Output:     generator.DefaultOutput,
		Format:     FormatText,
		Workers:    runtime.GOMAXPROCS(0),
		ConfigFile: DefaultConfigFile,
	}
}

// loadConfigFile overlays the YAML file at path onto cfg. A missing file is
// only an error when required.
func loadConfigFile(path string, cfg *Config, required bool) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty file decodes to io.EOF.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"."}
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("--format must be %s or %s, got %q", FormatText, FormatJSON, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	}
	if c.Output == "" {
		return fmt.Errorf("--output is required")
	}
	if c.Output != filepath.Base(c.Output) {
		return fmt.Errorf("--output must be a file name, got %q", c.Output)
	}
	return nil
}
