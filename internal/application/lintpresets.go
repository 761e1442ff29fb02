package application

import "github.com/ericfisherdev/synthpanel/internal/domain/model"

// Built-in lint preset names, in the order the shipped configuration extends them.
const (
	PresetJSRecommended  = "js/recommended"
	PresetVueRecommended = "vue/flat-recommended"
	PresetPrettier       = "prettier"
)

// knownGlobals are the global environments a configuration may enable.
var knownGlobals = map[string]bool{
	"browser": true,
	"node":    true,
	"es2021":  true,
	"worker":  true,
}

// lintPresets returns fresh copies of the built-in presets keyed by name.
func lintPresets() map[string]model.LintLayer {
	return map[string]model.LintLayer{
		PresetJSRecommended: {
			Name: PresetJSRecommended,
			Rules: map[string]model.Severity{
				"constructor-super":     model.SeverityError,
				"for-direction":         model.SeverityError,
				"getter-return":         model.SeverityError,
				"no-case-declarations":  model.SeverityError,
				"no-cond-assign":        model.SeverityError,
				"no-const-assign":       model.SeverityError,
				"no-constant-condition": model.SeverityError,
				"no-debugger":           model.SeverityError,
				"no-dupe-keys":          model.SeverityError,
				"no-duplicate-case":     model.SeverityError,
				"no-empty":              model.SeverityError,
				"no-fallthrough":        model.SeverityError,
				"no-redeclare":          model.SeverityError,
				"no-undef":              model.SeverityError,
				"no-unreachable":        model.SeverityError,
				"no-unused-vars":        model.SeverityError,
				"no-useless-escape":     model.SeverityError,
				"use-isnan":             model.SeverityError,
				"valid-typeof":          model.SeverityError,
			},
		},
		PresetVueRecommended: {
			Name: PresetVueRecommended,
			Rules: map[string]model.Severity{
				"vue/multi-word-component-names":              model.SeverityError,
				"vue/no-mutating-props":                       model.SeverityError,
				"vue/no-unused-vars":                          model.SeverityError,
				"vue/require-v-for-key":                       model.SeverityError,
				"vue/valid-v-model":                           model.SeverityError,
				"vue/require-default-prop":                    model.SeverityWarn,
				"vue/attribute-hyphenation":                   model.SeverityWarn,
				"vue/order-in-components":                     model.SeverityWarn,
				"vue/html-indent":                             model.SeverityWarn,
				"vue/html-self-closing":                       model.SeverityWarn,
				"vue/max-attributes-per-line":                 model.SeverityWarn,
				"vue/html-closing-bracket-newline":            model.SeverityWarn,
				"vue/singleline-html-element-content-newline": model.SeverityWarn,
			},
		},
		// Formatting is owned by the formatter, so every stylistic rule is off.
		PresetPrettier: {
			Name: PresetPrettier,
			Rules: map[string]model.Severity{
				"indent":       model.SeverityOff,
				"quotes":       model.SeverityOff,
				"semi":         model.SeverityOff,
				"comma-dangle": model.SeverityOff,

				"vue/html-indent":                             model.SeverityOff,
				"vue/html-self-closing":                       model.SeverityOff,
				"vue/max-attributes-per-line":                 model.SeverityOff,
				"vue/html-closing-bracket-newline":            model.SeverityOff,
				"vue/singleline-html-element-content-newline": model.SeverityOff,
			},
		},
	}
}

// DefaultLintConfig returns the configuration the console's front-end
// sources are linted with.
func DefaultLintConfig() model.LintConfig {
	return model.LintConfig{
		Extends: []string{PresetJSRecommended, PresetVueRecommended, PresetPrettier},
		Globals: []string{"browser", "node"},
		Rules: map[string]model.Severity{
			"vue/multi-word-component-names": model.SeverityOff,
			"vue/require-default-prop":       model.SeverityOff,
			"no-unused-vars":                 model.SeverityWarn,
			"no-undef":                       model.SeverityError,
		},
	}
}
