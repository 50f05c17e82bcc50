// Package readme composes a Markdown profile document from an aggregated
// profile record and a declarative configuration.
//
// Composition is a pure transform: the same profile and config always
// produce byte-identical output, and no method here performs I/O. Sections
// are resolved through a fixed registry with bilingual aliases, titles come
// from user overrides over template defaults, and the optional badge and
// chart collaborators are injected as Renderer implementations. Sections
// whose rendered body is empty are skipped entirely, so missing data never
// leaves a dangling heading.
//
// # Usage
//
//	builder := readme.NewBuilder(
//	    readme.WithBadges(badges.Renderer{}),
//	    readme.WithCharts(charts.Renderer{}),
//	)
//	doc := builder.Build(profile, readme.ParseConfig(rawConfig))
//	fmt.Print(doc.Markdown)
package readme

import (
	"fmt"
	"strings"

	"github.com/lmoreno/readmegen/pkg/profile"
)

// Renderer produces the body of a delegated section (badges, charts) plus an
// optional asset map. Implementations must be pure: no I/O, no mutation of
// the profile or config. Either return value may be nil.
type Renderer interface {
	Render(p *profile.Profile, cfg Config) (lines []string, assets map[string]string)
}

// Document is the composed output. Assets is nil when no collaborator
// produced any.
type Document struct {
	Markdown string            `json:"markdown"`
	Assets   map[string]string `json:"assets,omitempty"`
}

// Builder composes documents. Collaborators are optional; a nil renderer
// simply leaves its section empty.
type Builder struct {
	badges Renderer
	charts Renderer
}

// Option configures a Builder.
type Option func(*Builder)

// WithBadges injects the badge collaborator.
func WithBadges(r Renderer) Option {
	return func(b *Builder) { b.badges = r }
}

// WithCharts injects the chart collaborator.
func WithCharts(r Renderer) Option {
	return func(b *Builder) { b.charts = r }
}

// NewBuilder creates a Builder with the given collaborators.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the document for p under cfg. The config is never mutated;
// template titles are merged into a fresh map with user values winning per
// key. The header, when requested, always renders first as a level-1
// heading; every other section renders in its resolved order and is joined
// with a single blank separator line. The markdown ends with a trailing
// newline iff it is non-empty.
func (b *Builder) Build(p *profile.Profile, cfg Config) Document {
	tmpl, haveTemplate := templates[strings.ToLower(strings.TrimSpace(cfg.Template))]

	titles := make(map[string]string)
	if haveTemplate {
		for k, v := range tmpl.Titles {
			titles[k] = v
		}
	}
	for k, v := range cfg.Titles {
		titles[k] = v
	}

	sections := cfg.Sections.Normalize()
	if len(sections) == 0 {
		if haveTemplate {
			sections = tmpl.Sections
		} else {
			sections = DefaultSections
		}
	}

	var lines []string
	assets := make(map[string]string)

	for _, section := range sections {
		if section == SectionHeader {
			lines = append(lines, headerLines(p, cfg)...)
			break
		}
	}

	for _, section := range sections {
		var body []string
		switch section {
		case SectionHeader:
			continue
		case SectionBadges:
			body = renderInto(b.badges, p, cfg, assets)
		case SectionCharts:
			body = renderInto(b.charts, p, cfg, assets)
		case SectionBio:
			body = bioLines(p)
		case SectionStats:
			body = statsLines(p)
		case SectionLanguages:
			body = languageLines(p, cfg)
		case SectionRepos:
			body = repoLines(p, cfg)
		}

		appendSection(&lines, sectionTitle(section, titles), body)
	}

	markdown := strings.TrimSpace(strings.Join(lines, "\n"))
	if markdown != "" {
		markdown += "\n"
	}

	doc := Document{Markdown: markdown}
	if len(assets) > 0 {
		doc.Assets = assets
	}
	return doc
}

// renderInto invokes a collaborator and folds its assets into the running
// accumulator, later writers winning per key.
func renderInto(r Renderer, p *profile.Profile, cfg Config, assets map[string]string) []string {
	if r == nil {
		return nil
	}
	lines, newAssets := r.Render(p, cfg)
	for k, v := range newAssets {
		assets[k] = v
	}
	return trimBlank(splitAll(lines))
}

// sectionTitle resolves a section's heading: a non-blank user or template
// override wins, then the registry default. The empty string means the
// section body renders without a heading.
func sectionTitle(section string, titles map[string]string) string {
	if custom, ok := titles[section]; ok && strings.TrimSpace(custom) != "" {
		return strings.TrimSpace(custom)
	}
	return sectionTitles[section]
}

func headerLines(p *profile.Profile, cfg Config) []string {
	lines := []string{"# " + headerTitle(p)}
	if subtitle := strings.TrimSpace(cfg.Subtitle); subtitle != "" {
		lines = append(lines, subtitle)
	}
	return lines
}

// headerTitle builds the level-1 heading text: "Name (@user)" when both are
// present and distinct, the bare name when they match, "@user" without a
// name, and a generic fallback when the record has neither.
func headerTitle(p *profile.Profile) string {
	name := strings.TrimSpace(p.Name)
	username := strings.TrimSpace(p.Username)

	switch {
	case name != "" && username != "" && !strings.EqualFold(name, username):
		return fmt.Sprintf("%s (@%s)", name, username)
	case name != "":
		return name
	case username != "":
		return "@" + username
	default:
		return "GitHub Profile"
	}
}

func bioLines(p *profile.Profile) []string {
	bio := strings.TrimSpace(p.Bio)
	if bio == "" {
		return nil
	}
	return splitLines(bio)
}

func statsLines(p *profile.Profile) []string {
	var lines []string
	if p.Followers != nil {
		lines = append(lines, fmt.Sprintf("- Followers: %d", *p.Followers))
	}
	if p.Following != nil {
		lines = append(lines, fmt.Sprintf("- Following: %d", *p.Following))
	}
	if p.PublicRepos != nil {
		lines = append(lines, fmt.Sprintf("- Public repos: %d", *p.PublicRepos))
	}
	return lines
}

// languageLines renders the ranked language list. Percentages are always
// computed against the full aggregate byte total so that truncating the
// displayed list never inflates the remaining shares.
func languageLines(p *profile.Profile, cfg Config) []string {
	langs := p.TopLanguages
	if len(langs) == 0 {
		return nil
	}

	full := p.Languages
	if len(full) == 0 {
		full = langs
	}
	var total int64
	for _, l := range full {
		total += l.Bytes
	}

	if cfg.MaxLanguages > 0 && len(langs) > cfg.MaxLanguages {
		langs = langs[:cfg.MaxLanguages]
	}

	showPercent := cfg.ShowLanguagePercent == nil || *cfg.ShowLanguagePercent

	lines := make([]string, 0, len(langs))
	for _, l := range langs {
		if total > 0 && showPercent {
			percent := float64(l.Bytes) / float64(total) * 100
			lines = append(lines, fmt.Sprintf("- %s - %.1f%%", l.Name, percent))
		} else {
			lines = append(lines, "- "+l.Name)
		}
	}
	return lines
}

func repoLines(p *profile.Profile, cfg Config) []string {
	repos := p.Repos
	if len(repos) == 0 {
		return nil
	}
	if cfg.MaxRepos > 0 && len(repos) > cfg.MaxRepos {
		repos = repos[:cfg.MaxRepos]
	}

	layout := strings.ToLower(cfg.Layout)
	showStats := layout != "compact" && layout != "compacto"
	if cfg.ShowRepoStats != nil {
		showStats = *cfg.ShowRepoStats
	}

	if layout == "table" {
		return repoTable(repos)
	}

	lines := make([]string, 0, len(repos))
	for _, r := range repos {
		lines = append(lines, "- "+formatRepo(r, showStats))
	}
	return lines
}

func formatRepo(r profile.Repo, showStats bool) string {
	name := r.Name
	if name == "" {
		name = "repository"
	}

	text := name
	if r.URL != "" {
		text = fmt.Sprintf("[%s](%s)", name, r.URL)
	}
	if desc := strings.TrimSpace(r.Description); desc != "" {
		text += " - " + desc
	}

	if showStats {
		stats := []string{
			fmt.Sprintf("Stars: %d", r.Stars),
			fmt.Sprintf("Forks: %d", r.Forks),
		}
		if lang := strings.TrimSpace(r.Language); lang != "" {
			stats = append(stats, "Language: "+lang)
		}
		text += " (" + strings.Join(stats, ", ") + ")"
	}
	return text
}

// repoTable renders the repos as a single HTML table line, which GitHub
// renders fine inside Markdown. All user-supplied text is escaped.
func repoTable(repos []profile.Repo) []string {
	var rows strings.Builder
	for _, r := range repos {
		name := r.Name
		if name == "" {
			name = "repo"
		}
		link := r.URL
		if link == "" {
			link = "#"
		}
		cell := `<a href="` + htmlEscape(link) + `">` + htmlEscape(name) + `</a>`

		desc := "—"
		if d := strings.TrimSpace(r.Description); d != "" {
			desc = truncate(htmlEscape(d), 60, 57)
		}
		lang := "—"
		if l := strings.TrimSpace(r.Language); l != "" {
			lang = htmlEscape(l)
		}
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td></tr>", cell, desc, lang))
	}
	if rows.Len() == 0 {
		return nil
	}

	header := "<thead><tr><th>Repository</th><th>Description</th><th>Language</th></tr></thead>"
	return []string{"<table>" + header + "<tbody>" + rows.String() + "</tbody></table>"}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// truncate shortens s to keep runes plus an ellipsis when it exceeds limit runes.
func truncate(s string, limit, keep int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:keep]) + "..."
}

// appendSection adds a rendered section to the document: the body is
// trimmed of leading and trailing blank lines, empty bodies are skipped
// entirely, a blank separator precedes every section after the first, and a
// "## Title" heading plus blank line is emitted when a title exists.
func appendSection(lines *[]string, title string, body []string) {
	trimmed := trimBlank(body)
	if len(trimmed) == 0 {
		return
	}
	if len(*lines) > 0 {
		*lines = append(*lines, "")
	}
	if title != "" {
		*lines = append(*lines, "## "+title, "")
	}
	*lines = append(*lines, trimmed...)
}

// splitAll re-splits lines that themselves contain newlines, trimming
// trailing whitespace per line.
func splitAll(lines []string) []string {
	var out []string
	for _, line := range lines {
		out = append(out, splitLines(line)...)
	}
	return out
}

func splitLines(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, " \t\r")
	}
	return parts
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
