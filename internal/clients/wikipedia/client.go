// Package wikipedia is a thin MediaWiki API client covering the two calls
// the service needs: title search and plain-text summaries.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// DisambiguationError reports that a title resolves to a disambiguation
// page. Options lists the linked article titles, most relevant first.
type DisambiguationError struct {
	Title   string
	Options []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("wikipedia: %q is a disambiguation page (%d options)", e.Title, len(e.Options))
}

type Client interface {
	Search(ctx context.Context, query string) ([]string, error)
	Summary(ctx context.Context, title string, sentences int) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

type Option func(*client)

// WithBaseURL points the client at a different API endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

func NewClient(log *logger.Logger, opts ...Option) Client {
	c := &client{
		log:        log.With("client", "Wikipedia"),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "edulearn-backend/1.0")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia http %d: %s", resp.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}

// Search returns matching article titles, best first.
func (c *client) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "10")

	var parsed struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &parsed); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(parsed.Query.Search))
	for _, s := range parsed.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

// Summary fetches a plain-text extract limited to the given sentence count.
// Disambiguation pages return a DisambiguationError carrying the linked
// titles so the caller can retry with the first option.
func (c *client) Summary(ctx context.Context, title string, sentences int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|pageprops|links")
	params.Set("titles", title)
	params.Set("exsentences", strconv.Itoa(sentences))
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "20")

	var parsed struct {
		Query struct {
			Pages map[string]struct {
				Title     string `json:"title"`
				Extract   string `json:"extract"`
				Missing   *any   `json:"missing,omitempty"`
				PageProps struct {
					Disambiguation *string `json:"disambiguation"`
				} `json:"pageprops"`
				Links []struct {
					Title string `json:"title"`
				} `json:"links"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &parsed); err != nil {
		return "", err
	}
	for _, page := range parsed.Query.Pages {
		if page.Missing != nil {
			return "", fmt.Errorf("wikipedia: page %q not found", title)
		}
		if page.PageProps.Disambiguation != nil {
			options := make([]string, 0, len(page.Links))
			for _, l := range page.Links {
				options = append(options, l.Title)
			}
			return "", &DisambiguationError{Title: page.Title, Options: options}
		}
		if page.Extract != "" {
			return page.Extract, nil
		}
	}
	return "", fmt.Errorf("wikipedia: no extract for %q", title)
}
