// Package profile aggregates a user's public GitHub data into a single
// normalized record: identity, follower and repository counts, a ranked
// language breakdown, and a capped list of recently updated repositories.
//
// The package contains the only network-facing orchestration in readmegen;
// rendering (pkg/readme) consumes the Profile it produces and performs no
// I/O of its own.
package profile

import "time"

// LanguageStat is one entry in the ranked language breakdown.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// Repo summarizes a repository for display.
type Repo struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	Language    string     `json:"language,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	IsFork      bool       `json:"is_fork"`
}

// Profile is the normalized profile record assembled by Builder.Fetch.
//
// Languages is the full ranked breakdown sorted by byte count descending,
// with ties keeping first-seen order; TopLanguages is its first ten entries.
// Percentages are computed from the full aggregate byte total, never from a
// truncated slice. Repos preserves the upstream listing order (most recently
// updated first) and is capped at the configured display limit.
type Profile struct {
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
	Followers   *int   `json:"followers,omitempty"`
	Following   *int   `json:"following,omitempty"`
	PublicRepos *int   `json:"public_repos,omitempty"`
	PublicGists *int   `json:"public_gists,omitempty"`

	TotalStars      int `json:"total_stars"`
	TotalForks      int `json:"total_forks"`
	TotalOpenIssues int `json:"total_open_issues"`

	Languages    []LanguageStat `json:"languages"`
	TopLanguages []LanguageStat `json:"top_languages"`
	Repos        []Repo         `json:"repos"`
}
