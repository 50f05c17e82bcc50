package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultLanguageConcurrency is the maximum number of in-flight language
// requests during a fan-out. Kept deliberately low to stay inside GitHub's
// secondary rate limits.
const DefaultLanguageConcurrency = 5

// LanguageCount pairs a language name with a byte count. The slice form
// preserves the key order of the upstream JSON object, which Go maps would
// lose; downstream ranking breaks ties on first-seen order.
type LanguageCount struct {
	Name  string
	Bytes int64
}

// Languages fetches the language byte counts for a single repository.
// languagesURL is the repo's languages_url as returned by the listing endpoint.
func (c *Client) Languages(ctx context.Context, languagesURL string) ([]LanguageCount, error) {
	body, err := c.doRequest(ctx, languagesURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return decodeLanguageCounts(body)
}

// RepoLanguages fetches language statistics for each repo concurrently, with
// at most concurrency requests in flight at a time (DefaultLanguageConcurrency
// when concurrency <= 0). The returned slice is indexed like repos, so the
// result is deterministic regardless of request completion order. A failed or
// malformed response leaves a nil entry for that repo; partial failure never
// fails the batch.
func (c *Client) RepoLanguages(ctx context.Context, repos []Repo, concurrency int) [][]LanguageCount {
	if concurrency <= 0 {
		concurrency = DefaultLanguageConcurrency
	}

	results := make([][]LanguageCount, len(repos))
	sem := semaphore.NewWeighted(int64(concurrency))
	var wg sync.WaitGroup

	for i, repo := range repos {
		if repo.LanguagesURL == "" {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			counts, err := c.Languages(ctx, url)
			if err != nil {
				return
			}
			results[i] = counts
		}(i, repo.LanguagesURL)
	}

	wg.Wait()
	return results
}

func decodeLanguageCounts(r io.Reader) ([]LanguageCount, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("unexpected languages payload")
	}

	var counts []LanguageCount
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected languages payload")
		}
		var bytes int64
		if err := dec.Decode(&bytes); err != nil {
			return nil, err
		}
		counts = append(counts, LanguageCount{Name: name, Bytes: bytes})
	}
	return counts, nil
}
