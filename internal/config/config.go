// Package config loads readmegen configuration from an optional TOML file
// with environment variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the TOML file, then
// environment variables. The [render] table is kept loosely typed and handed
// to readme.ParseConfig untouched, so any render option the composer or its
// collaborators understand can live in the file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lmoreno/readmegen/pkg/github"
	"github.com/lmoreno/readmegen/pkg/profile"
)

// DefaultAddr is the default listen address for the HTTP server.
const DefaultAddr = ":8080"

// DefaultPath is the config file probed when no path is given.
const DefaultPath = "readmegen.toml"

// Server holds HTTP server settings.
type Server struct {
	Addr string `toml:"addr"`
}

// GitHub holds upstream API settings and aggregation limits.
type GitHub struct {
	Token               string `toml:"token"`
	MaxRepos            int    `toml:"max_repos"`
	LanguageRepoLimit   int    `toml:"language_repo_limit"`
	RepoResultLimit     int    `toml:"repo_result_limit"`
	LanguageConcurrency int    `toml:"language_concurrency"`
}

// Config is the full application configuration.
type Config struct {
	Server Server         `toml:"server"`
	GitHub GitHub         `toml:"github"`
	Render map[string]any `toml:"render"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{Addr: DefaultAddr},
		GitHub: GitHub{
			MaxRepos:            github.DefaultMaxRepos,
			LanguageRepoLimit:   profile.DefaultLanguageRepos,
			RepoResultLimit:     profile.DefaultRepoResults,
			LanguageConcurrency: github.DefaultLanguageConcurrency,
		},
	}
}

// Load reads the configuration file at path and applies environment
// overrides. An empty path probes DefaultPath; a missing file at the probed
// path is not an error, a missing file at an explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("READMEGEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	envInt("GITHUB_MAX_REPOS", &c.GitHub.MaxRepos)
	envInt("GITHUB_LANGUAGE_REPO_LIMIT", &c.GitHub.LanguageRepoLimit)
	envInt("GITHUB_REPO_RESULT_LIMIT", &c.GitHub.RepoResultLimit)
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = n
	}
}

// Limits converts the GitHub settings into aggregation limits.
func (c *Config) Limits() profile.Limits {
	return profile.Limits{
		MaxRepos:            c.GitHub.MaxRepos,
		LanguageRepos:       c.GitHub.LanguageRepoLimit,
		RepoResults:         c.GitHub.RepoResultLimit,
		LanguageConcurrency: c.GitHub.LanguageConcurrency,
	}
}
