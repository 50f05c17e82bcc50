// Package badges builds shields.io badge Markdown for a profile document.
// It implements the readme.Renderer contract and performs no I/O; output is
// plain Markdown image links whose URLs point at img.shields.io.
package badges

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

const (
	shieldsBase  = "https://img.shields.io/badge"
	defaultStyle = "flat"
)

// DefaultBadges is the badge set rendered when the config names none.
var DefaultBadges = []string{"profile", "followers", "repos", "top_language"}

// Renderer implements readme.Renderer for the badges section.
type Renderer struct{}

// Render builds the configured badges as a single Markdown line.
// Recognized raw config keys: "badges" (enable list), "style", "joiner",
// "colors" (per-badge color map), "language_badges" (sub-config for the
// per-language badge list). Returns no assets.
func (Renderer) Render(p *profile.Profile, cfg readme.Config) ([]string, map[string]string) {
	raw := cfg.Raw

	style := stringOr(raw, "style", defaultStyle)
	joiner := stringOr(raw, "joiner", " ")
	enabled := readme.NameList(rawValue(raw, "badges"), DefaultBadges)
	colors, _ := readme.MapOption(raw, "colors")

	var parts []string
	for _, badge := range enabled {
		switch badge {
		case "profile":
			if p.Username == "" {
				continue
			}
			u := shieldURL("GitHub", p.Username, colorOr(colors, "profile", "181717"), style, "github")
			link := "https://github.com/" + p.Username
			parts = append(parts, markdownBadge("GitHub profile", u, link))
		case "followers":
			if p.Followers == nil {
				continue
			}
			u := shieldURL("Followers", strconv.Itoa(*p.Followers), colorOr(colors, "followers", "blue"), style, "")
			parts = append(parts, markdownBadge("Followers", u, ""))
		case "repos":
			if p.PublicRepos == nil {
				continue
			}
			u := shieldURL("Repos", strconv.Itoa(*p.PublicRepos), colorOr(colors, "repos", "informational"), style, "")
			parts = append(parts, markdownBadge("Public repos", u, ""))
		case "top_language":
			if badge := topLanguageBadge(p, colors, style); badge != "" {
				parts = append(parts, badge)
			}
		case "languages":
			sub, _ := readme.MapOption(raw, "language_badges")
			merged := make(map[string]any, len(sub)+3)
			for k, v := range sub {
				merged[k] = v
			}
			if _, ok := merged["style"]; !ok {
				merged["style"] = style
			}
			if _, ok := merged["color"]; !ok {
				if c, ok := readme.StringOption(colors, "languages"); ok {
					merged["color"] = c
				}
			}
			parts = append(parts, languageBadges(p, merged)...)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}
	return []string{strings.Join(parts, joiner)}, nil
}

func topLanguageBadge(p *profile.Profile, colors map[string]any, style string) string {
	langs := p.TopLanguages
	if len(langs) == 0 {
		return ""
	}

	message := langs[0].Name
	if total := languageTotal(p); total > 0 {
		percent := int(math.Round(float64(langs[0].Bytes) / float64(total) * 100))
		message = fmt.Sprintf("%s %d%%", langs[0].Name, percent)
	}
	u := shieldURL("Top language", message, colorOr(colors, "top_language", "orange"), style, "")
	return markdownBadge("Top language", u, "")
}

// languageBadges builds one badge per language, capped by "max_languages"
// (default 5) and filtered by "min_percent" (fractional thresholds allowed,
// compared against the unrounded share). Percentages are computed from the
// full aggregate total, consistent with the languages section.
func languageBadges(p *profile.Profile, cfg map[string]any) []string {
	langs := p.TopLanguages
	if len(langs) == 0 {
		return nil
	}

	maxLanguages := 5
	if n, ok := readme.IntOption(cfg, "max_languages"); ok {
		maxLanguages = n
	}
	if maxLanguages <= 0 {
		return nil
	}

	minPercent := 0.0
	if f, ok := readme.FloatOption(cfg, "min_percent"); ok {
		minPercent = f
	}

	total := languageTotal(p)
	if total <= 0 {
		return nil
	}

	color := "blue"
	if c, ok := readme.StringOption(cfg, "color"); ok {
		color = c
	} else if c, ok := readme.StringOption(cfg, "language_color"); ok {
		color = c
	}
	style := stringOr(cfg, "style", defaultStyle)

	if len(langs) > maxLanguages {
		langs = langs[:maxLanguages]
	}

	var out []string
	for _, l := range langs {
		share := float64(l.Bytes) / float64(total) * 100
		if share < minPercent {
			continue
		}
		u := shieldURL(l.Name, fmt.Sprintf("%d%%", int(math.Round(share))), color, style, "")
		out = append(out, markdownBadge(l.Name, u, ""))
	}
	return out
}

// languageTotal sums bytes across the full language breakdown, falling back
// to the top slice for hand-built profiles.
func languageTotal(p *profile.Profile) int64 {
	langs := p.Languages
	if len(langs) == 0 {
		langs = p.TopLanguages
	}
	var total int64
	for _, l := range langs {
		total += l.Bytes
	}
	return total
}

func shieldURL(label, message, color, style, logo string) string {
	params := url.Values{"style": {style}}
	if logo != "" {
		params.Set("logo", logo)
	}
	return fmt.Sprintf("%s/%s-%s-%s?%s",
		shieldsBase, url.QueryEscape(label), url.QueryEscape(message), color, params.Encode())
}

func markdownBadge(alt, imageURL, link string) string {
	if link != "" {
		return fmt.Sprintf("[![%s](%s)](%s)", alt, imageURL, link)
	}
	return fmt.Sprintf("![%s](%s)", alt, imageURL)
}

func stringOr(m map[string]any, key, fallback string) string {
	if s, ok := readme.StringOption(m, key); ok {
		return s
	}
	return fallback
}

func colorOr(colors map[string]any, key, fallback string) string {
	return stringOr(colors, key, fallback)
}

func rawValue(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}
