package badges

import (
	"strings"
	"testing"

	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

func intp(v int) *int { return &v }

func sampleProfile() *profile.Profile {
	return &profile.Profile{
		Username:    "ana",
		Followers:   intp(42),
		PublicRepos: intp(9),
		Languages: []profile.LanguageStat{
			{Name: "Go", Bytes: 800},
			{Name: "Rust", Bytes: 150},
			{Name: "C", Bytes: 50},
		},
		TopLanguages: []profile.LanguageStat{
			{Name: "Go", Bytes: 800},
			{Name: "Rust", Bytes: 150},
			{Name: "C", Bytes: 50},
		},
	}
}

func render(t *testing.T, p *profile.Profile, raw map[string]any) string {
	t.Helper()
	lines, assets := Renderer{}.Render(p, readme.Config{Raw: raw})
	if assets != nil {
		t.Errorf("Render() assets = %v, want nil", assets)
	}
	return strings.Join(lines, "\n")
}

func TestRenderDefaults(t *testing.T) {
	got := render(t, sampleProfile(), nil)

	wants := []string{
		"[![GitHub profile](https://img.shields.io/badge/GitHub-ana-181717?logo=github&style=flat)](https://github.com/ana)",
		"![Followers](https://img.shields.io/badge/Followers-42-blue?style=flat)",
		"![Public repos](https://img.shields.io/badge/Repos-9-informational?style=flat)",
		"![Top language](https://img.shields.io/badge/Top+language-Go+80%25-orange?style=flat)",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
	if strings.Count(got, "\n") != 0 {
		t.Errorf("default joiner should produce a single line:\n%s", got)
	}
}

func TestRenderEnableList(t *testing.T) {
	got := render(t, sampleProfile(), map[string]any{"badges": "followers"})

	if !strings.Contains(got, "Followers-42") {
		t.Errorf("followers badge missing:\n%s", got)
	}
	for _, absent := range []string{"GitHub-ana", "Repos-9", "Top+language"} {
		if strings.Contains(got, absent) {
			t.Errorf("Render() includes %q despite enable list:\n%s", absent, got)
		}
	}
}

func TestRenderStyleAndColors(t *testing.T) {
	raw := map[string]any{
		"style":  "for-the-badge",
		"colors": map[string]any{"followers": "purple"},
		"badges": []any{"followers"},
	}
	got := render(t, sampleProfile(), raw)

	if !strings.Contains(got, "style=for-the-badge") {
		t.Errorf("style override missing:\n%s", got)
	}
	if !strings.Contains(got, "Followers-42-purple") {
		t.Errorf("color override missing:\n%s", got)
	}
}

func TestRenderJoiner(t *testing.T) {
	got := render(t, sampleProfile(), map[string]any{"joiner": "\n"})
	if strings.Count(got, "\n") == 0 {
		t.Errorf("newline joiner produced a single line:\n%s", got)
	}
}

func TestRenderLanguageBadges(t *testing.T) {
	raw := map[string]any{
		"badges": "languages",
		"language_badges": map[string]any{
			"max_languages": 2,
			"min_percent":   10,
		},
	}
	got := render(t, sampleProfile(), raw)

	// Go 80%, Rust 15%; C is cut by max_languages and would fail min_percent.
	if !strings.Contains(got, "Go-80%25") {
		t.Errorf("Go badge missing:\n%s", got)
	}
	if !strings.Contains(got, "Rust-15%25") {
		t.Errorf("Rust badge missing:\n%s", got)
	}
	if strings.Contains(got, "/C-") {
		t.Errorf("C badge rendered past the cap:\n%s", got)
	}
}

func TestRenderLanguageBadgesMinPercent(t *testing.T) {
	raw := map[string]any{
		"badges":          "languages",
		"language_badges": map[string]any{"min_percent": 20},
	}
	got := render(t, sampleProfile(), raw)

	if !strings.Contains(got, "Go-80%25") {
		t.Errorf("Go badge missing:\n%s", got)
	}
	if strings.Contains(got, "Rust") {
		t.Errorf("Rust badge rendered below min_percent:\n%s", got)
	}
}

func TestRenderLanguageBadgesFractionalMinPercent(t *testing.T) {
	p := &profile.Profile{
		Username: "ana",
		TopLanguages: []profile.LanguageStat{
			{Name: "Go", Bytes: 976},
			{Name: "Rust", Bytes: 24}, // 2.4% of 1000
		},
	}
	raw := map[string]any{
		"badges":          "languages",
		"language_badges": map[string]any{"min_percent": 2.5},
	}
	got := render(t, p, raw)

	if !strings.Contains(got, "Go-98%25") {
		t.Errorf("Go badge missing:\n%s", got)
	}
	// 2.4 is below 2.5; the threshold applies before rounding to 2.
	if strings.Contains(got, "Rust") {
		t.Errorf("Rust badge rendered below fractional min_percent:\n%s", got)
	}
}

func TestRenderLanguageBadgeColorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		sub  map[string]any
		want string
	}{
		{
			name: "explicit color wins even when it matches the default",
			sub:  map[string]any{"color": "blue", "language_color": "red"},
			want: "Go-100%25-blue",
		},
		{
			name: "language_color applies without color",
			sub:  map[string]any{"language_color": "red"},
			want: "Go-100%25-red",
		},
		{
			name: "neither falls back to blue",
			sub:  map[string]any{},
			want: "Go-100%25-blue",
		},
	}

	p := &profile.Profile{
		Username:     "ana",
		TopLanguages: []profile.LanguageStat{{Name: "Go", Bytes: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"badges": "languages", "language_badges": tt.sub}
			got := render(t, p, raw)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render() = %q, want badge %q", got, tt.want)
			}
		})
	}
}

func TestRenderLanguageBadgeColorsMap(t *testing.T) {
	p := &profile.Profile{
		Username:     "ana",
		TopLanguages: []profile.LanguageStat{{Name: "Go", Bytes: 100}},
	}
	raw := map[string]any{
		"badges": "languages",
		"colors": map[string]any{"languages": "green"},
	}
	got := render(t, p, raw)
	if !strings.Contains(got, "Go-100%25-green") {
		t.Errorf("colors map not applied to language badges:\n%s", got)
	}
}

func TestRenderSkipsMissingData(t *testing.T) {
	p := &profile.Profile{Username: "ana"}
	got := render(t, p, nil)

	if !strings.Contains(got, "GitHub-ana") {
		t.Errorf("profile badge missing:\n%s", got)
	}
	for _, absent := range []string{"Followers", "Repos", "Top+language"} {
		if strings.Contains(got, absent) {
			t.Errorf("badge %q rendered without data:\n%s", absent, got)
		}
	}
}

func TestRenderEmptyProfile(t *testing.T) {
	lines, assets := Renderer{}.Render(&profile.Profile{}, readme.Config{})
	if lines != nil || assets != nil {
		t.Errorf("Render(empty) = %v,%v, want nil,nil", lines, assets)
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	p := &profile.Profile{
		Username:     "ana",
		TopLanguages: []profile.LanguageStat{{Name: "C++", Bytes: 100}},
	}
	got := render(t, p, map[string]any{"badges": "languages"})
	if !strings.Contains(got, "C%2B%2B-100%25") {
		t.Errorf("label not query-escaped:\n%s", got)
	}
}
