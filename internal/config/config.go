// Package config loads the cmpreflex configuration file.
//
// Example:
//
//	name_pattern: "^(?i)(compare|cmp)"
//	checks:
//	  reflexivity: true
//	  unused_params: true
//	consumers:
//	  - func: "example.com/sortutil.By"
//	    arg: 0
//	    kind: three-way
//	pure:
//	  - "(example.com/model.User).Key"
//	zero_on_equal:
//	  - "example.com/model.CompareKeys"
//	budget:
//	  max_steps: 20000
//	  max_paths: 512
//
// Missing keys keep their defaults; unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mpyw/cmpreflex/internal/typeutil"
)

// DefaultNamePattern matches declarations checked by name alone.
const DefaultNamePattern = "^(?i)(compare|cmp)"

// Config is the analyzer configuration.
type Config struct {
	NamePattern string     `yaml:"name_pattern"`
	Checks      Checks     `yaml:"checks"`
	Consumers   []Consumer `yaml:"consumers"`
	Pure        []string   `yaml:"pure"`
	ZeroOnEqual []string   `yaml:"zero_on_equal"`
	Budget      Budget     `yaml:"budget"`

	namePattern *regexp.Regexp
}

// Checks toggles the individual checks.
type Checks struct {
	Reflexivity  bool `yaml:"reflexivity"`
	UnusedParams bool `yaml:"unused_params"`
}

// Consumer is a function that takes an ordering function argument.
type Consumer struct {
	Func string `yaml:"func"` // full name, e.g. "example.com/sortutil.By"
	Arg  int    `yaml:"arg"`  // index of the ordering argument
	Kind string `yaml:"kind"` // "three-way" or "less"
}

// Ordering returns the parsed kind of c. Valid after Load.
func (c Consumer) Ordering() typeutil.Ordering {
	o, _ := typeutil.ParseOrdering(c.Kind)
	return o
}

// Budget bounds the interpreter per evaluated function.
type Budget struct {
	MaxSteps int `yaml:"max_steps"`
	MaxPaths int `yaml:"max_paths"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		NamePattern: DefaultNamePattern,
		Checks:      Checks{Reflexivity: true, UnusedParams: true},
		Budget:      Budget{MaxSteps: 20000, MaxPaths: 512},
		namePattern: regexp.MustCompile(DefaultNamePattern),
	}
}

// NameRegexp returns the compiled name pattern, or nil when name-based
// discovery is disabled by an empty pattern.
func (c *Config) NameRegexp() *regexp.Regexp {
	return c.namePattern
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Path == "" {
		b.WriteString("config: invalid configuration:")
	} else {
		fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	}
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the configuration at path. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return nil, verr
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration. Empty input yields Default().
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var issues []string

	c.namePattern = nil
	if c.NamePattern != "" {
		re, err := regexp.Compile(c.NamePattern)
		if err != nil {
			issues = append(issues, fmt.Sprintf("name_pattern: %v", err))
		}
		c.namePattern = re
	}

	for i, cons := range c.Consumers {
		if cons.Func == "" {
			issues = append(issues, fmt.Sprintf("consumers[%d]: func is required", i))
		}
		if cons.Arg < 0 {
			issues = append(issues, fmt.Sprintf("consumers[%d]: arg must not be negative", i))
		}
		if _, ok := typeutil.ParseOrdering(cons.Kind); !ok {
			issues = append(issues, fmt.Sprintf("consumers[%d]: unknown kind %q (want \"three-way\" or \"less\")", i, cons.Kind))
		}
	}

	for _, list := range []struct {
		field string
		names []string
	}{{"pure", c.Pure}, {"zero_on_equal", c.ZeroOnEqual}} {
		for i, name := range list.names {
			if strings.TrimSpace(name) == "" {
				issues = append(issues, fmt.Sprintf("%s[%d]: empty function name", list.field, i))
			}
		}
	}

	if c.Budget.MaxSteps < 0 {
		issues = append(issues, "budget.max_steps must not be negative")
	}
	if c.Budget.MaxPaths < 0 {
		issues = append(issues, "budget.max_paths must not be negative")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
