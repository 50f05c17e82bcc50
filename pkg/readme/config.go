package readme

import (
	"sort"
	"strconv"
	"strings"
)

// Config controls document composition. The zero value renders every default
// section with default titles.
//
// Raw keeps a copy of the original loosely typed configuration so the badge
// and chart collaborators can consume their sub-options verbatim.
type Config struct {
	Template string            // named preset supplying default sections/titles
	Sections SectionSpec       // explicit section override, wins over the template
	Titles   map[string]string // per-section title overrides, win per key
	Subtitle string            // extra line under the level-1 heading

	MaxLanguages        int    // cap for the languages section, 0 = all
	ShowLanguagePercent *bool  // nil = true
	MaxRepos            int    // cap for the repos section, 0 = all
	Layout              string // "", "default", "compact", "table"
	ShowRepoStats       *bool  // nil = true unless the layout is compact

	Raw map[string]any
}

// ParseConfig converts a loosely typed configuration mapping (as decoded
// from JSON or TOML) into a Config. Unknown keys are kept in Raw; malformed
// values for known keys fall back to their defaults rather than failing.
func ParseConfig(raw map[string]any) Config {
	var cfg Config
	if raw == nil {
		return cfg
	}

	cfg.Raw = make(map[string]any, len(raw))
	for k, v := range raw {
		cfg.Raw[k] = v
	}

	cfg.Template, _ = StringOption(raw, "template")
	cfg.Sections = ParseSectionSpec(raw["sections"])
	cfg.Subtitle, _ = StringOption(raw, "subtitle", "tagline")
	cfg.Layout, _ = StringOption(raw, "layout")

	if titles, ok := raw["titles"].(map[string]any); ok {
		cfg.Titles = make(map[string]string, len(titles))
		for k, v := range titles {
			if s, ok := v.(string); ok {
				cfg.Titles[k] = s
			}
		}
	} else if titles, ok := raw["titles"].(map[string]string); ok {
		cfg.Titles = make(map[string]string, len(titles))
		for k, v := range titles {
			cfg.Titles[k] = v
		}
	}

	if n, ok := IntOption(raw, "max_languages", "language_count"); ok && n > 0 {
		cfg.MaxLanguages = n
	}
	if n, ok := IntOption(raw, "max_repos", "repo_count"); ok && n > 0 {
		cfg.MaxRepos = n
	}
	if b, ok := BoolOption(raw, "show_language_percent"); ok {
		cfg.ShowLanguagePercent = &b
	}
	if b, ok := BoolOption(raw, "show_repo_stats"); ok {
		cfg.ShowRepoStats = &b
	}
	return cfg
}

// StringOption returns the first non-blank string value among keys.
func StringOption(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// IntOption returns the first value among keys coercible to an int.
// JSON numbers arrive as float64 and numeric strings are accepted too,
// matching the permissive inputs the HTTP API tolerates.
func IntOption(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// FloatOption returns the first value among keys coercible to a float64.
func FloatOption(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// BoolOption returns the first value among keys coercible to a bool.
func BoolOption(m map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		case int:
			return b != 0, true
		case float64:
			return b != 0, true
		}
	}
	return false, false
}

// MapOption returns the first map-typed value among keys.
func MapOption(m map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if sub, ok := m[k].(map[string]any); ok {
			return sub, true
		}
	}
	return nil, false
}

// NameList coerces an enable-list value into a list of names: a
// comma-separated string, a list of strings, or a name→enabled mapping.
// A nil value yields defaults. Mapping forms are ordered by defaults first
// (Go maps carry no order), then alphabetically for names outside defaults.
func NameList(v any, defaults []string) []string {
	switch value := v.(type) {
	case nil:
		return append([]string(nil), defaults...)
	case string:
		var out []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	case []string:
		var out []string
		for _, item := range value {
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range value {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		return orderedEnabled(value, defaults, truthy)
	case map[string]bool:
		anyMap := make(map[string]any, len(value))
		for k, v := range value {
			anyMap[k] = v
		}
		return orderedEnabled(anyMap, defaults, truthy)
	default:
		return append([]string(nil), defaults...)
	}
}

func orderedEnabled(m map[string]any, defaults []string, enabled func(any) bool) []string {
	rank := make(map[string]int, len(defaults))
	for i, name := range defaults {
		rank[name] = i
	}

	var names []string
	for name, v := range m {
		if enabled(v) {
			names = append(names, name)
		}
	}

	pos := func(n string) int {
		if r, ok := rank[n]; ok {
			return r
		}
		return len(rank)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := pos(names[i]), pos(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	case string:
		return b != "" && b != "0" && !strings.EqualFold(b, "false")
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return true
	}
}
