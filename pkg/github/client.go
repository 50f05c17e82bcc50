package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	errs "github.com/lmoreno/readmegen/pkg/errors"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "readmegen"
	apiVersion     = "2022-11-28"

	// requestTimeout bounds the whole request; connectTimeout bounds dialing.
	requestTimeout = 20 * time.Second
	connectTimeout = 10 * time.Second

	// maxPerPage is GitHub's hard limit for the repository listing endpoint.
	maxPerPage = 100
)

// DefaultMaxRepos caps how many repositories the paginated listing fetches.
const DefaultMaxRepos = 100

// Client provides access to the GitHub API for profile data.
// Each Client owns its own HTTP client, so independent aggregation requests
// share no mutable state.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise instance or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, opts ...Option) *Client {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"User-Agent":           userAgent,
		"X-GitHub-Api-Version": apiVersion,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	c := &Client{
		http:    newHTTPClient(),
		baseURL: defaultBaseURL,
		headers: headers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			MaxConnsPerHost:       DefaultLanguageConcurrency + 1,
			MaxIdleConnsPerHost:   DefaultLanguageConcurrency + 1,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: connectTimeout,
			ForceAttemptHTTP2:     true,
		},
	}
}

// User fetches the user record for username.
// A 404 response maps to ErrCodeUserNotFound.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	var u User
	target := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	if err := c.getJSON(ctx, target, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Repos fetches repositories owned by username, most recently updated first.
// It pages through the listing endpoint until maxRepos records are
// accumulated or the data runs out: an empty page, a short page, or a 2xx
// payload that is not a repo array all end the listing with whatever has
// been accumulated so far. Pass maxRepos <= 0 to use DefaultMaxRepos.
func (c *Client) Repos(ctx context.Context, username string, maxRepos int) ([]Repo, error) {
	if maxRepos <= 0 {
		maxRepos = DefaultMaxRepos
	}

	var repos []Repo
	for page := 1; len(repos) < maxRepos; page++ {
		perPage := min(maxPerPage, maxRepos-len(repos))
		target := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&sort=updated&direction=desc&type=owner",
			c.baseURL, url.PathEscape(username), perPage, page)

		body, err := c.doRequest(ctx, target)
		if err != nil {
			return nil, err
		}
		var batch []Repo
		err = json.NewDecoder(body).Decode(&batch)
		body.Close()
		if err != nil {
			// Non-array 2xx payload signals the end of the listing.
			break
		}
		if len(batch) == 0 {
			break
		}
		repos = append(repos, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return repos, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeUpstream, err, "decoding github response")
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "building github request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "github api request failed")
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp.Body, nil
}

// statusError converts a non-2xx response into a coded error.
// GitHub returns 404 for unknown users on both the user record and the
// repository listing, so any 404 here means the subject user does not exist.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusNotFound {
		return errs.New(errs.ErrCodeUserNotFound, "github user not found")
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	message := ""
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		message = apiErr.Message
	} else {
		message = strings.TrimSpace(string(data))
	}
	return &errs.UpstreamStatusError{StatusCode: resp.StatusCode, Message: message}
}

// User is the subset of the GitHub user record readmegen consumes.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
}

// Repo is a raw repository record from the listing endpoint.
// Ordering from the API (most recently updated first) is preserved.
type Repo struct {
	Name         string     `json:"name"`
	HTMLURL      string     `json:"html_url"`
	Description  string     `json:"description"`
	Stars        int        `json:"stargazers_count"`
	Forks        int        `json:"forks_count"`
	OpenIssues   int        `json:"open_issues_count"`
	Language     string     `json:"language"`
	PushedAt     *time.Time `json:"pushed_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	Fork         bool       `json:"fork"`
	LanguagesURL string     `json:"languages_url"`
}
