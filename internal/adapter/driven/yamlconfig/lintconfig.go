// Package yamlconfig reads lint configuration files written in YAML.
package yamlconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// lintFile mirrors the on-disk layout:
//
//	extends: [js/recommended, vue/flat-recommended, prettier]
//	globals: [browser, node]
//	rules:
//	  no-unused-vars: warn
//	  no-undef: 2
type lintFile struct {
	Extends []string       `yaml:"extends"`
	Globals []string       `yaml:"globals"`
	Rules   map[string]any `yaml:"rules"`
}

// LoadLintConfig reads and parses the lint configuration at path.
func LoadLintConfig(path string) (model.LintConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LintConfig{}, fmt.Errorf("read lint config: %w", err)
	}

	cfg, err := ParseLintConfig(data)
	if err != nil {
		return model.LintConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseLintConfig decodes a YAML lint configuration. Unknown top-level keys
// are rejected. Every invalid severity is reported.
func ParseLintConfig(data []byte) (model.LintConfig, error) {
	var f lintFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return model.LintConfig{}, fmt.Errorf("decode lint config: %w", err)
	}

	cfg := model.LintConfig{
		Extends: f.Extends,
		Globals: f.Globals,
		Rules:   make(map[string]model.Severity, len(f.Rules)),
	}

	names := make([]string, 0, len(f.Rules))
	for name := range f.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		sev, err := model.ParseSeverity(f.Rules[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %q: %w", name, err))
			continue
		}
		cfg.Rules[name] = sev
	}
	if len(errs) > 0 {
		return model.LintConfig{}, errors.Join(errs...)
	}

	return cfg, nil
}

// MarshalLintConfig encodes cfg in the same layout ParseLintConfig reads,
// with severities written by name.
func MarshalLintConfig(cfg model.LintConfig) ([]byte, error) {
	f := lintFile{
		Extends: cfg.Extends,
		Globals: cfg.Globals,
		Rules:   make(map[string]any, len(cfg.Rules)),
	}
	for name, sev := range cfg.Rules {
		f.Rules[name] = sev.String()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode lint config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode lint config: %w", err)
	}
	return buf.Bytes(), nil
}
