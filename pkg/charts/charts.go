// Package charts builds chart image Markdown for a profile document using
// the hosted github-readme-stats and streak-stats services. It implements
// the readme.Renderer contract: only URL strings are constructed here, no
// image is fetched or rendered.
//
// Besides the Markdown lines, Render reports each chart URL in the asset
// map under "chart:<kind>" so callers can route the images through the
// readmegen proxy endpoint.
package charts

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

const (
	statsBase    = "https://github-readme-stats.vercel.app/api"
	topLangsBase = "https://github-readme-stats.vercel.app/api/top-langs"
	streakBase   = "https://streak-stats.demolab.com"
)

// DefaultCharts is the chart set rendered when the config names none.
var DefaultCharts = []string{"stats", "top_languages"}

// Renderer implements readme.Renderer for the charts section.
type Renderer struct{}

// Render builds the configured chart images. Recognized raw config keys:
// "charts" (enable list), "theme", "hide_border", "joiner", plus per-chart
// sub-configs "stats", "top_languages", and "streak" whose entries are
// merged verbatim into the image URL query.
func (Renderer) Render(p *profile.Profile, cfg readme.Config) ([]string, map[string]string) {
	if p.Username == "" {
		return nil, nil
	}
	raw := cfg.Raw

	enabled := readme.NameList(rawValue(raw, "charts"), DefaultCharts)
	theme, _ := readme.StringOption(raw, "theme")
	hideBorder := true
	if b, ok := readme.BoolOption(raw, "hide_border"); ok {
		hideBorder = b
	}

	var lines []string
	assets := make(map[string]string)
	for _, chart := range enabled {
		var imageURL, alt string
		switch chart {
		case "stats":
			sub, _ := readme.MapOption(raw, "stats")
			imageURL = statsChartURL(p.Username, sub, theme, hideBorder)
			alt = altText(sub, "GitHub stats")
		case "top_languages":
			sub, _ := readme.MapOption(raw, "top_languages")
			imageURL = topLanguagesChartURL(p.Username, sub, theme, hideBorder)
			alt = altText(sub, "Top languages")
		case "streak":
			sub, _ := readme.MapOption(raw, "streak")
			imageURL = streakChartURL(p.Username, sub, theme, hideBorder)
			alt = altText(sub, "GitHub streak")
		default:
			continue
		}
		lines = append(lines, fmt.Sprintf("![%s](%s)", alt, imageURL))
		assets["chart:"+chart] = imageURL
	}

	if len(lines) == 0 {
		return nil, nil
	}
	if joiner, ok := readme.StringOption(raw, "joiner"); ok && joiner != "\n" {
		lines = []string{strings.Join(lines, joiner)}
	}
	return lines, assets
}

func statsChartURL(username string, extra map[string]any, theme string, hideBorder bool) string {
	params := url.Values{}
	params.Set("username", username)
	params.Set("show_icons", "true")
	params.Set("hide_border", strconv.FormatBool(hideBorder))
	if theme != "" {
		params.Set("theme", theme)
	}
	mergeParams(params, extra)
	return statsBase + "?" + params.Encode()
}

func topLanguagesChartURL(username string, extra map[string]any, theme string, hideBorder bool) string {
	params := url.Values{}
	params.Set("username", username)
	params.Set("layout", "compact")
	params.Set("langs_count", "8")
	params.Set("hide_border", strconv.FormatBool(hideBorder))
	if theme != "" {
		params.Set("theme", theme)
	}
	mergeParams(params, extra)
	return topLangsBase + "?" + params.Encode()
}

func streakChartURL(username string, extra map[string]any, theme string, hideBorder bool) string {
	params := url.Values{}
	params.Set("user", username)
	params.Set("hide_border", strconv.FormatBool(hideBorder))
	if theme != "" {
		params.Set("theme", theme)
	}
	mergeParams(params, extra)
	return streakBase + "?" + params.Encode()
}

// mergeParams folds extra config entries into the query. "alt" is reserved
// for the Markdown alt text and nil values are skipped.
func mergeParams(params url.Values, extra map[string]any) {
	for k, v := range extra {
		if k == "alt" || v == nil {
			continue
		}
		params.Set(k, stringify(v))
	}
}

func stringify(v any) string {
	switch value := v.(type) {
	case bool:
		return strconv.FormatBool(value)
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func altText(sub map[string]any, fallback string) string {
	if alt, ok := readme.StringOption(sub, "alt"); ok {
		return alt
	}
	return fallback
}

func rawValue(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}
