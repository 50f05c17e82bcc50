package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	errs "github.com/lmoreno/readmegen/pkg/errors"
)

func newTestClient(srv *httptest.Server, token string) *Client {
	return NewClient(token, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestUserRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, `{"login":"ana"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv, "secret-token")
	user, err := client.User(context.Background(), "ana")
	if err != nil {
		t.Fatalf("User() error: %v", err)
	}
	if user.Login != "ana" {
		t.Errorf("login = %q, want %q", user.Login, "ana")
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"User-Agent":           "readmegen",
		"X-GitHub-Api-Version": "2022-11-28",
		"Authorization":        "Bearer secret-token",
	}
	for k, want := range headers {
		if v := got.Get(k); v != want {
			t.Errorf("header %s = %q, want %q", k, v, want)
		}
	}
}

func TestUserNoTokenNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, `{"login":"ana"}`)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv, "").User(context.Background(), "ana"); err != nil {
		t.Fatalf("User() error: %v", err)
	}
}

func TestUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").User(context.Background(), "ghost")
	if !errs.Is(err, errs.ErrCodeUserNotFound) {
		t.Errorf("User() error = %v, want code %s", err, errs.ErrCodeUserNotFound)
	}
}

func TestUserUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").User(context.Background(), "ana")
	var upstream *errs.UpstreamStatusError
	if !errors.As(err, &upstream) {
		t.Fatalf("User() error = %v, want *UpstreamStatusError", err)
	}
	if upstream.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", upstream.StatusCode, http.StatusForbidden)
	}
	if upstream.Message != "API rate limit exceeded" {
		t.Errorf("message = %q, want upstream message", upstream.Message)
	}
}

func TestUserNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(srv, "")
	srv.Close()

	_, err := client.User(context.Background(), "ana")
	if !errs.Is(err, errs.ErrCodeNetwork) {
		t.Errorf("User() error = %v, want code %s", err, errs.ErrCodeNetwork)
	}
}

// reposHandler serves a synthetic listing of total repositories, honoring
// per_page and page the way the real endpoint does.
func reposHandler(t *testing.T, total int, pages *[]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		*pages = append(*pages, "per_page="+q.Get("per_page")+" page="+q.Get("page"))

		if q.Get("sort") != "updated" || q.Get("direction") != "desc" || q.Get("type") != "owner" {
			t.Errorf("unexpected listing query %q", r.URL.RawQuery)
		}

		perPage, _ := strconv.Atoi(q.Get("per_page"))
		page, _ := strconv.Atoi(q.Get("page"))
		start := (page - 1) * perPage

		var batch []Repo
		for i := start; i < total && len(batch) < perPage; i++ {
			batch = append(batch, Repo{Name: fmt.Sprintf("repo-%d", i)})
		}
		if batch == nil {
			batch = []Repo{}
		}
		json.NewEncoder(w).Encode(batch)
	}
}

func TestReposPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		maxRepos  int
		wantCount int
		wantPages []string
	}{
		{
			name:      "short page ends listing",
			total:     3,
			maxRepos:  100,
			wantCount: 3,
			wantPages: []string{"per_page=100 page=1"},
		},
		{
			name:      "final page requests only the remainder",
			total:     250,
			maxRepos:  150,
			wantCount: 150,
			wantPages: []string{"per_page=100 page=1", "per_page=50 page=2"},
		},
		{
			name:      "cap reached exactly",
			total:     100,
			maxRepos:  100,
			wantCount: 100,
			wantPages: []string{"per_page=100 page=1"},
		},
		{
			name:      "empty listing",
			total:     0,
			maxRepos:  100,
			wantCount: 0,
			wantPages: []string{"per_page=100 page=1"},
		},
		{
			name:      "small cap",
			total:     250,
			maxRepos:  10,
			wantCount: 10,
			wantPages: []string{"per_page=10 page=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pages []string
			srv := httptest.NewServer(reposHandler(t, tt.total, &pages))
			defer srv.Close()

			repos, err := newTestClient(srv, "").Repos(context.Background(), "ana", tt.maxRepos)
			if err != nil {
				t.Fatalf("Repos() error: %v", err)
			}
			if len(repos) != tt.wantCount {
				t.Errorf("Repos() returned %d repos, want %d", len(repos), tt.wantCount)
			}
			if len(pages) != len(tt.wantPages) {
				t.Fatalf("requested pages %v, want %v", pages, tt.wantPages)
			}
			for i := range pages {
				if pages[i] != tt.wantPages[i] {
					t.Errorf("page request %d = %q, want %q", i, pages[i], tt.wantPages[i])
				}
			}
		})
	}
}

func TestReposNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").Repos(context.Background(), "ghost", 100)
	if !errs.Is(err, errs.ErrCodeUserNotFound) {
		t.Errorf("Repos() error = %v, want code %s", err, errs.ErrCodeUserNotFound)
	}
}

func TestReposNonListBodyEndsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"a list"}`)
	}))
	defer srv.Close()

	repos, err := newTestClient(srv, "").Repos(context.Background(), "ana", 100)
	if err != nil {
		t.Fatalf("Repos() error: %v", err)
	}
	if len(repos) != 0 {
		t.Errorf("Repos() = %d repos, want none", len(repos))
	}
}

func TestReposNonListPageKeepsAccumulated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `{"message":"not a list"}`)
			return
		}
		batch := make([]Repo, 100)
		for i := range batch {
			batch[i] = Repo{Name: fmt.Sprintf("repo-%d", i)}
		}
		json.NewEncoder(w).Encode(batch)
	}))
	defer srv.Close()

	repos, err := newTestClient(srv, "").Repos(context.Background(), "ana", 150)
	if err != nil {
		t.Fatalf("Repos() error: %v", err)
	}
	if len(repos) != 100 {
		t.Errorf("Repos() = %d repos, want the 100 accumulated before the bad page", len(repos))
	}
}
