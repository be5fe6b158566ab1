package cli

import (
	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config. Values from the
// config file apply first and explicit flags override them.
func ParseArgs(args []string) (*Config, error) {
	cfg := DefaultConfig()
	flags := *cfg

	fs := pflag.NewFlagSet("gen-enumkeys", pflag.ContinueOnError)
	fs.StringSliceVarP(&flags.Types, "type", "t", nil, "only generate for these type names (comma-separated or repeated)")
	fs.StringVarP(&flags.Output, "output", "o", cfg.Output, "generated file name, written next to each package's sources")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", DefaultConfigFile, "YAML config file")
	fs.BoolVar(&flags.Check, "check", false, "report stale generated files instead of writing them")
	fs.StringVar(&flags.Format, "format", cfg.Format, "diagnostic format: text or json")
	fs.IntVarP(&flags.Workers, "workers", "w", cfg.Workers, "packages generated in parallel")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if err := loadConfigFile(cfg.ConfigFile, cfg, fs.Changed("config")); err != nil {
		return nil, err
	}

	if fs.Changed("type") {
		cfg.Types = flags.Types
	}
	if fs.Changed("output") {
		cfg.Output = flags.Output
	}
	if fs.Changed("check") {
		cfg.Check = flags.Check
	}
	if fs.Changed("format") {
		cfg.Format = flags.Format
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.Workers
	}
	if fs.Changed("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if fs.NArg() > 0 {
		cfg.Patterns = fs.Args()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
