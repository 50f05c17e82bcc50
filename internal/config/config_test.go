package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every override so ambient variables cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GITHUB_TOKEN",
		"READMEGEN_ADDR",
		"GITHUB_MAX_REPOS",
		"GITHUB_LANGUAGE_REPO_LIMIT",
		"GITHUB_REPO_RESULT_LIMIT",
	} {
		t.Setenv(name, "")
	}
}

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. Equivalent to t.Chdir, which
// requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.GitHub.MaxRepos != 100 || cfg.GitHub.LanguageRepoLimit != 30 || cfg.GitHub.RepoResultLimit != 12 {
		t.Errorf("limits = %+v", cfg.GitHub)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "readmegen.toml")
	content := `
[server]
addr = ":9090"

[github]
token = "file-token"
max_repos = 50

[render]
template = "minimal"
subtitle = "hello"

[render.badges]
style = "flat-square"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.GitHub.Token != "file-token" || cfg.GitHub.MaxRepos != 50 {
		t.Errorf("github = %+v", cfg.GitHub)
	}
	// Unset file keys keep their defaults.
	if cfg.GitHub.LanguageRepoLimit != 30 {
		t.Errorf("language_repo_limit = %d, want default 30", cfg.GitHub.LanguageRepoLimit)
	}
	if cfg.Render["template"] != "minimal" || cfg.Render["subtitle"] != "hello" {
		t.Errorf("render = %v", cfg.Render)
	}
	if sub, ok := cfg.Render["badges"].(map[string]any); !ok || sub["style"] != "flat-square" {
		t.Errorf("render.badges = %v", cfg.Render["badges"])
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "readmegen.toml")
	if err := os.WriteFile(path, []byte("[github]\ntoken = \"file-token\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("READMEGEN_ADDR", ":7070")
	t.Setenv("GITHUB_MAX_REPOS", "25")
	t.Setenv("GITHUB_LANGUAGE_REPO_LIMIT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("token = %q, want env override", cfg.GitHub.Token)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.GitHub.MaxRepos != 25 {
		t.Errorf("max_repos = %d, want 25", cfg.GitHub.MaxRepos)
	}
	if cfg.GitHub.LanguageRepoLimit != 30 {
		t.Errorf("language_repo_limit = %d, malformed env must be ignored", cfg.GitHub.LanguageRepoLimit)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() = nil error for missing explicit path")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "readmegen.toml")
	if err := os.WriteFile(path, []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error for malformed file")
	}
}

func TestLimits(t *testing.T) {
	cfg := Default()
	cfg.GitHub.MaxRepos = 10
	cfg.GitHub.LanguageConcurrency = 2

	limits := cfg.Limits()
	if limits.MaxRepos != 10 || limits.LanguageConcurrency != 2 {
		t.Errorf("Limits() = %+v", limits)
	}
	if limits.LanguageRepos != 30 || limits.RepoResults != 12 {
		t.Errorf("Limits() = %+v, want defaults carried through", limits)
	}
}
