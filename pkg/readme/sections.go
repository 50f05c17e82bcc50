package readme

// Canonical section identifiers. Every free-form section specification is
// folded into this fixed set; names outside it are silently dropped.
const (
	SectionHeader    = "header"
	SectionBadges    = "badges"
	SectionBio       = "bio"
	SectionStats     = "stats"
	SectionLanguages = "languages"
	SectionRepos     = "repos"
	SectionCharts    = "charts"
)

// DefaultSections is the section ordering used when the configuration
// resolves to no sections at all.
var DefaultSections = []string{
	SectionHeader,
	SectionBadges,
	SectionBio,
	SectionStats,
	SectionLanguages,
	SectionRepos,
	SectionCharts,
}

// sectionTitles are the registry default titles. The header renders without
// a section wrapper and has no title here.
var sectionTitles = map[string]string{
	SectionBadges:    "Badges",
	SectionBio:       "About",
	SectionStats:     "Stats",
	SectionLanguages: "Top Languages",
	SectionRepos:     "Top Repositories",
	SectionCharts:    "Charts",
}

// sectionAliases folds alternate and Spanish section names to canonical ones.
var sectionAliases = map[string]string{
	"header":       SectionHeader,
	"title":        SectionHeader,
	"titulo":       SectionHeader,
	"badges":       SectionBadges,
	"insignias":    SectionBadges,
	"bio":          SectionBio,
	"about":        SectionBio,
	"acerca":       SectionBio,
	"stats":        SectionStats,
	"statistics":   SectionStats,
	"estadisticas": SectionStats,
	"languages":    SectionLanguages,
	"lenguajes":    SectionLanguages,
	"repos":        SectionRepos,
	"repositories": SectionRepos,
	"repositorios": SectionRepos,
	"charts":       SectionCharts,
	"graficos":     SectionCharts,
}

// Template is a named preset supplying default sections and titles.
type Template struct {
	Sections []string
	Titles   map[string]string
}

var templates = map[string]Template{
	"minimal": {
		Sections: []string{SectionHeader, SectionBio, SectionRepos},
		Titles:   map[string]string{SectionBio: "About", SectionRepos: "Projects"},
	},
	"professional": {
		Sections: DefaultSections,
		Titles: map[string]string{
			SectionBadges:    "Badges",
			SectionBio:       "About",
			SectionStats:     "Statistics",
			SectionLanguages: "Languages",
			SectionRepos:     "Repositories",
			SectionCharts:    "Activity",
		},
	},
	"creative": {
		Sections: DefaultSections,
		Titles: map[string]string{
			SectionBadges:    "🔗 Links",
			SectionBio:       "👋 About me",
			SectionStats:     "📊 Stats",
			SectionLanguages: "💻 Languages",
			SectionRepos:     "⭐ Projects",
			SectionCharts:    "📈 Activity",
		},
	},
}

// TemplateNames lists the available template names in default ordering.
func TemplateNames() []string {
	return []string{"minimal", "professional", "creative"}
}
