package application

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// Sentinel errors returned by ResolveLint.
var (
	ErrUnknownPreset = errors.New("unknown lint preset")
	ErrUnknownRule   = errors.New("unknown lint rule")
	ErrUnknownGlobal = errors.New("unknown global environment")
)

// localLayerName labels rules set directly in a configuration rather than
// inherited from a preset.
const localLayerName = "local"

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	presets := lintPresets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownLintRules returns every rule name recognized by at least one preset,
// sorted.
func KnownLintRules() []string {
	seen := make(map[string]bool)
	for _, layer := range lintPresets() {
		for rule := range layer.Rules {
			seen[rule] = true
		}
	}

	rules := make([]string, 0, len(seen))
	for rule := range seen {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	return rules
}

// ResolveLint flattens cfg into the effective rule set. Presets are applied in
// the order listed in cfg.Extends and the config's own rules are applied last,
// each layer overriding the severities set before it. Every problem found is
// reported, joined into one error.
func ResolveLint(cfg model.LintConfig) ([]model.LintRule, error) {
	presets := lintPresets()
	known := make(map[string]bool)
	for _, rule := range KnownLintRules() {
		known[rule] = true
	}

	var errs []error

	layers := make([]model.LintLayer, 0, len(cfg.Extends)+1)
	for _, name := range cfg.Extends {
		layer, ok := presets[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPreset, name))
			continue
		}
		layers = append(layers, layer)
	}
	layers = append(layers, model.LintLayer{Name: localLayerName, Rules: cfg.Rules})

	for _, name := range cfg.Globals {
		if !knownGlobals[name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownGlobal, name))
		}
	}

	for _, rule := range sortedRuleNames(cfg.Rules) {
		if !known[rule] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, rule))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	effective := make(map[string]model.LintRule)
	for _, layer := range layers {
		for name, sev := range layer.Rules {
			effective[name] = model.LintRule{Name: name, Severity: sev, Layer: layer.Name}
		}
	}

	out := make([]model.LintRule, 0, len(effective))
	for _, rule := range effective {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func sortedRuleNames(rules map[string]model.Severity) []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
