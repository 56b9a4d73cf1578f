package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"pyjs/compiler"
)

// Config is the merged configuration of one pyjs run: defaults, then the
// config file, then flags given on the command line.
type Config struct {
	Runtime       string      `yaml:"runtime"`
	AllowOmission bool        `yaml:"allow_omission"`
	Jobs          int         `yaml:"jobs"`
	Output        string      `yaml:"output"`
	Exclude       patternList `yaml:"exclude"`
}

func defaultConfig() Config {
	return Config{
		Runtime: compiler.DefaultRuntime,
		Jobs:    runtime.NumCPU(),
	}
}

// ConfigError lists every problem found in a config file.
type ConfigError struct {
	Path   string
	Issues []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, strings.Join(e.Issues, "; "))
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// loadConfig reads path over the defaults in cfg. An empty file leaves cfg
// unchanged.
func loadConfig(path string, cfg Config) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate(path string) error {
	errs := &ConfigError{Path: path}
	if !identRe.MatchString(c.Runtime) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("runtime %q is not a JavaScript identifier", c.Runtime))
	}
	if c.Jobs < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("jobs must be at least 1, got %d", c.Jobs))
	}
	for i, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("exclude[%d] %q: %v", i, pattern, err))
		}
	}
	if len(errs.Issues) > 0 {
		return errs
	}
	return nil
}

// options returns the translator options of the configuration.
func (c Config) options() []compiler.Option {
	opts := []compiler.Option{
		compiler.WithRuntime(c.Runtime),
		compiler.WithOmission(c.AllowOmission),
	}
	if c.AllowOmission {
		opts = append(opts, compiler.WithOmitHook(func(err *compiler.Error) {
			compiler.DebugLogPrintf("omitted %v", err)
		}))
	}
	return opts
}

// patternList accepts either a single glob or a sequence of globs.
type patternList []string

func (l *patternList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = patternList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = patternList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	}
	return fmt.Errorf("exclude: expected a glob or a list of globs, found %s", value.ShortTag())
}
