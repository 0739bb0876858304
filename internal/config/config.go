// Package config loads gqlpath settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"gopkg.in/yaml.v2"
)

// EnvConfigPath names the environment variable holding the default config
// file path.
const EnvConfigPath = "GQLPATH_CONFIG"

// Output formats for generated bodies.
const (
	FormatNDJSON    = "ndjson"
	FormatJSONArray = "json-array"
)

// Console modes.
const (
	ConsolePretty     = "pretty"
	ConsoleBurp       = "burp"
	ConsoleBurpPretty = "burp_pretty"
)

// Generation holds the search and synthesis budgets.
type Generation struct {
	MaxPathDepth              int    `yaml:"max_path_depth"`
	MaxPaths                  int    `yaml:"max_paths"`
	SelectionDepth            int    `yaml:"selection_depth"`
	MaxFieldsPerType          int    `yaml:"max_fields_per_type"`
	MaxTotalFields            int    `yaml:"max_total_fields"`
	MaxInputDepth             int    `yaml:"max_input_depth"`
	ArgMode                   string `yaml:"arg_mode"`
	CyclePolicy               string `yaml:"cycle_policy"`
	IncludeOptionalArgs       bool   `yaml:"include_optional_args"`
	IncludeRequiredArgsFields bool   `yaml:"include_required_args_fields"`
	InlineFragments           bool   `yaml:"inline_fragments"`
	Bundle                    bool   `yaml:"bundle"`
}

// Output controls rendering of queries, files and console text.
type Output struct {
	Pretty      bool   `yaml:"pretty"`
	Indent      int    `yaml:"indent"`
	Format      string `yaml:"format"`
	ConsoleMode string `yaml:"console_mode"`
	Separator   string `yaml:"separator"`
	Color       bool   `yaml:"color"`
}

// Target describes the GraphQL endpoint that raw requests are addressed to.
type Target struct {
	Scheme      string            `yaml:"scheme"`
	Host        string            `yaml:"host"`
	Port        int               `yaml:"port"`
	Path        string            `yaml:"path"`
	Method      string            `yaml:"method"`
	ContentType string            `yaml:"content_type"`
	Headers     map[string]string `yaml:"headers"`
}

// Server holds HTTP API settings.
type Server struct {
	Port      int     `yaml:"port"`
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// Config is the root of the configuration file.
type Config struct {
	Root       string     `yaml:"root"`
	DBPath     string     `yaml:"db_path"`
	Debug      bool       `yaml:"debug"`
	Generation Generation `yaml:"generation"`
	Output     Output     `yaml:"output"`
	Target     Target     `yaml:"target"`
	Server     Server     `yaml:"server"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	opts := querygen.DefaultOptions()
	return &Config{
		Root:   "Query",
		DBPath: "./gqlpath.db",
		Generation: Generation{
			MaxPathDepth:     opts.MaxPathDepth,
			MaxPaths:         opts.MaxPaths,
			SelectionDepth:   opts.SelectionDepth,
			MaxFieldsPerType: opts.MaxFieldsPerType,
			MaxTotalFields:   opts.MaxTotalFields,
			MaxInputDepth:    opts.MaxInputDepth,
			ArgMode:          string(opts.ArgMode),
			CyclePolicy:      string(opts.CyclePolicy),
		},
		Output: Output{
			Pretty:      true,
			Indent:      opts.Indent,
			Format:      FormatNDJSON,
			ConsoleMode: ConsolePretty,
			Separator:   strings.Repeat("-", 75),
			Color:       true,
		},
		Target: Target{
			Scheme:      "https",
			Host:        "localhost",
			Path:        "/graphql",
			Method:      "POST",
			ContentType: "application/json",
		},
		Server: Server{
			Port:      8080,
			RateLimit: 5,
			Burst:     20,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path or
// a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and budgets.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}

	switch c.Output.Format {
	case FormatNDJSON, FormatJSONArray:
	default:
		return fmt.Errorf("invalid output format %q (want ndjson or json-array)", c.Output.Format)
	}
	switch c.Output.ConsoleMode {
	case ConsolePretty, ConsoleBurp, ConsoleBurpPretty:
	default:
		return fmt.Errorf("invalid console mode %q (want pretty, burp or burp_pretty)", c.Output.ConsoleMode)
	}
	if c.Target.Port < 0 || c.Target.Port > 65535 {
		return fmt.Errorf("invalid target port %d", c.Target.Port)
	}
	return nil
}

// Options converts the generation and output settings for the generator.
func (c *Config) Options() querygen.Options {
	g := c.Generation
	return querygen.Options{
		MaxPathDepth:              g.MaxPathDepth,
		MaxPaths:                  g.MaxPaths,
		SelectionDepth:            g.SelectionDepth,
		MaxFieldsPerType:          g.MaxFieldsPerType,
		MaxTotalFields:            g.MaxTotalFields,
		MaxInputDepth:             g.MaxInputDepth,
		ArgMode:                   querygen.ArgMode(g.ArgMode),
		CyclePolicy:               querygen.CyclePolicy(g.CyclePolicy),
		IncludeOptionalArgs:       g.IncludeOptionalArgs,
		IncludeRequiredArgsFields: g.IncludeRequiredArgsFields,
		InlineFragments:           g.InlineFragments,
		Bundle:                    g.Bundle,
		Pretty:                    c.Output.Pretty,
		Indent:                    c.Output.Indent,
	}
}

// DefaultPath returns the config path named by GQLPATH_CONFIG, if any.
func DefaultPath() string {
	return os.Getenv(EnvConfigPath)
}
