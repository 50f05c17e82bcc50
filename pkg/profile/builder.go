package profile

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/lmoreno/readmegen/pkg/errors"
	"github.com/lmoreno/readmegen/pkg/github"
)

// Default limits for profile aggregation. MaxRepos caps pagination,
// LanguageRepos caps how many repositories are queried for language stats
// (a cost/rate-limit trade-off), and RepoResults caps the displayed list.
const (
	DefaultMaxRepos      = 100
	DefaultLanguageRepos = 30
	DefaultRepoResults   = 12

	// TopLanguageCount is how many entries TopLanguages keeps.
	TopLanguageCount = 10
)

// Limits tune how much data a Builder fetches per profile.
// Zero values fall back to the package defaults.
type Limits struct {
	MaxRepos            int // pagination cap for the repository listing
	LanguageRepos       int // how many recent repos to query for languages
	RepoResults         int // display cap for the repository list
	LanguageConcurrency int // in-flight cap for the language fan-out
}

func (l Limits) withDefaults() Limits {
	if l.MaxRepos <= 0 {
		l.MaxRepos = DefaultMaxRepos
	}
	if l.LanguageRepos <= 0 {
		l.LanguageRepos = DefaultLanguageRepos
	}
	if l.RepoResults <= 0 {
		l.RepoResults = DefaultRepoResults
	}
	if l.LanguageConcurrency <= 0 {
		l.LanguageConcurrency = github.DefaultLanguageConcurrency
	}
	return l
}

// Builder assembles normalized profiles from the GitHub API.
//
// The Builder is stateless apart from its client and logger; a single Builder
// can serve concurrent requests, with each Fetch call owning its own
// intermediate data.
type Builder struct {
	gh     *github.Client
	limits Limits
	logger *log.Logger
}

// NewBuilder creates a Builder using the given client and limits.
// If logger is nil, log.Default() is used.
func NewBuilder(gh *github.Client, limits Limits, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{gh: gh, limits: limits.withDefaults(), logger: logger}
}

// Fetch builds the profile record for username.
//
// The user lookup and repository listing are mandatory: any failure there
// aborts the whole request. The per-repository language fan-out is best
// effort; failed repositories simply contribute no bytes.
func (b *Builder) Fetch(ctx context.Context, username string) (*Profile, error) {
	if err := errs.ValidateUsername(username); err != nil {
		return nil, err
	}

	start := time.Now()

	user, err := b.gh.User(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := b.gh.Repos(ctx, username, b.limits.MaxRepos)
	if err != nil {
		return nil, err
	}

	owned := ownedRepos(repos)
	langRepos := owned
	if len(langRepos) > b.limits.LanguageRepos {
		langRepos = langRepos[:b.limits.LanguageRepos]
	}

	perRepo := b.gh.RepoLanguages(ctx, langRepos, b.limits.LanguageConcurrency)
	languages := AggregateLanguages(perRepo)

	top := languages
	if len(top) > TopLanguageCount {
		top = top[:TopLanguageCount]
	}

	display := owned
	if len(display) > b.limits.RepoResults {
		display = display[:b.limits.RepoResults]
	}

	p := &Profile{
		Username:     userLogin(user, username),
		Name:         user.Name,
		Bio:          user.Bio,
		AvatarURL:    user.AvatarURL,
		ProfileURL:   user.HTMLURL,
		Followers:    intPtr(user.Followers),
		Following:    intPtr(user.Following),
		PublicRepos:  intPtr(user.PublicRepos),
		PublicGists:  intPtr(user.PublicGists),
		Languages:    languages,
		TopLanguages: top,
		Repos:        summarizeRepos(display),
	}
	for _, r := range owned {
		p.TotalStars += r.Stars
		p.TotalForks += r.Forks
		p.TotalOpenIssues += r.OpenIssues
	}

	b.logger.Debug("profile assembled",
		"user", p.Username,
		"repos", len(repos),
		"languages", len(languages),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return p, nil
}

// ownedRepos selects the non-fork subset, falling back to the full listing
// when the account only has forks so the profile is still populated.
func ownedRepos(repos []github.Repo) []github.Repo {
	var owned []github.Repo
	for _, r := range repos {
		if !r.Fork {
			owned = append(owned, r)
		}
	}
	if len(owned) == 0 {
		return repos
	}
	return owned
}

func summarizeRepos(repos []github.Repo) []Repo {
	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		updated := r.PushedAt
		if updated == nil {
			updated = r.UpdatedAt
		}
		out = append(out, Repo{
			Name:        r.Name,
			URL:         r.HTMLURL,
			Description: r.Description,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			UpdatedAt:   updated,
			IsFork:      r.Fork,
		})
	}
	return out
}

func userLogin(u *github.User, fallback string) string {
	if u.Login != "" {
		return u.Login
	}
	return fallback
}

func intPtr(v int) *int { return &v }
