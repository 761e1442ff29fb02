package model

import (
	"fmt"
	"strings"
)

// Severity is the level a lint rule reports at.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the canonical lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a configured severity into a Severity. It accepts the
// names "off", "warn" and "error" in any case, and the numeric levels 0, 1
// and 2 either as integers or as strings.
func ParseSeverity(v any) (Severity, error) {
	switch val := v.(type) {
	case Severity:
		if val < SeverityOff || val > SeverityError {
			return 0, fmt.Errorf("invalid severity %d", int(val))
		}
		return val, nil
	case int:
		return ParseSeverity(Severity(val))
	case int64:
		return ParseSeverity(Severity(val))
	case uint64:
		if val > uint64(SeverityError) {
			return 0, fmt.Errorf("invalid severity %d", val)
		}
		return Severity(val), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "off", "0":
			return SeverityOff, nil
		case "warn", "1":
			return SeverityWarn, nil
		case "error", "2":
			return SeverityError, nil
		}
		return 0, fmt.Errorf("invalid severity %q: want off, warn or error", val)
	default:
		return 0, fmt.Errorf("invalid severity %v (%T)", v, v)
	}
}

// LintLayer is one named object in a layered lint configuration. Rules set
// in later layers override the same rules set in earlier ones.
type LintLayer struct {
	Name  string
	Rules map[string]Severity
}

// LintConfig is a project lint configuration: presets to extend, global
// environments the code runs in, and local rule overrides.
type LintConfig struct {
	Extends []string
	Globals []string
	Rules   map[string]Severity
}

// LintRule is one rule in a resolved configuration together with the layer
// that last set it.
type LintRule struct {
	Name     string
	Severity Severity
	Layer    string
}
