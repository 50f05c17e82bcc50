package readme

import (
	"sort"
	"strings"
)

// sectionEntry is one requested section with its enabled flag.
type sectionEntry struct {
	name    string
	enabled bool
}

// SectionSpec is a user-supplied section specification in one of three
// accepted shapes: an ordered list of names, a name→enabled mapping, or a
// single name. The zero value means "unspecified" and lets template or
// default sections apply.
//
// Construct one with SectionList, SectionToggles, SectionName, or
// ParseSectionSpec for loosely typed config values.
type SectionSpec struct {
	entries []sectionEntry
}

// SectionList builds a spec from an ordered list of section names.
func SectionList(names ...string) SectionSpec {
	var s SectionSpec
	for _, n := range names {
		s.entries = append(s.entries, sectionEntry{name: n, enabled: true})
	}
	return s
}

// SectionName builds a spec from a single section name.
func SectionName(name string) SectionSpec {
	return SectionList(name)
}

// SectionToggles builds a spec from a name→enabled mapping. Since Go maps
// carry no order, entries are ordered by the canonical default section
// ordering, with unrecognized names (dropped later anyway) last.
func SectionToggles(toggles map[string]bool) SectionSpec {
	names := make([]string, 0, len(toggles))
	for n := range toggles {
		names = append(names, n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return canonicalRank(names[i]) < canonicalRank(names[j])
	})

	var s SectionSpec
	for _, n := range names {
		s.entries = append(s.entries, sectionEntry{name: n, enabled: toggles[n]})
	}
	return s
}

func canonicalRank(name string) int {
	canonical := sectionAliases[strings.ToLower(strings.TrimSpace(name))]
	for i, s := range DefaultSections {
		if s == canonical {
			return i
		}
	}
	return len(DefaultSections)
}

// IsZero reports whether the spec carries no entries at all.
func (s SectionSpec) IsZero() bool {
	return len(s.entries) == 0
}

// Normalize resolves the spec into a canonical, deduplicated, ordered list
// of known section identifiers. Aliases (including the Spanish forms) fold
// to canonical names, disabled entries are omitted, and unrecognized names
// are silently dropped. Returns nil when nothing resolves.
func (s SectionSpec) Normalize() []string {
	var out []string
	seen := make(map[string]bool)

	for _, e := range s.entries {
		if !e.enabled {
			continue
		}
		canonical, ok := sectionAliases[strings.ToLower(strings.TrimSpace(e.name))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

// ParseSectionSpec converts a loosely typed config value into a SectionSpec.
// Accepted shapes: a string, a list of strings, a list of objects with
// "id"/"name"/"section" and optional "enabled" keys, or a name→enabled
// mapping. Anything else yields the zero spec.
func ParseSectionSpec(v any) SectionSpec {
	switch value := v.(type) {
	case nil:
		return SectionSpec{}
	case string:
		if strings.TrimSpace(value) == "" {
			return SectionSpec{}
		}
		return SectionName(value)
	case []string:
		return SectionList(value...)
	case map[string]bool:
		return SectionToggles(value)
	case map[string]any:
		toggles := make(map[string]bool, len(value))
		for name, enabled := range value {
			toggles[name] = truthy(enabled)
		}
		return SectionToggles(toggles)
	case []any:
		var s SectionSpec
		for _, item := range value {
			switch entry := item.(type) {
			case string:
				s.entries = append(s.entries, sectionEntry{name: entry, enabled: true})
			case map[string]any:
				name, _ := firstString(entry, "id", "name", "section")
				if name == "" {
					continue
				}
				enabled := true
				if v, ok := entry["enabled"]; ok {
					enabled = truthy(v)
				}
				s.entries = append(s.entries, sectionEntry{name: name, enabled: enabled})
			}
		}
		return s
	default:
		return SectionSpec{}
	}
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
