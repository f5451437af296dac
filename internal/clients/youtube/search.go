// Package youtube scrapes YouTube's result page and caption endpoints the
// same way the common scraping libraries do: no API key, parse the
// ytInitialData blob, fetch timedtext XML for captions.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

const defaultBaseURL = "https://www.youtube.com"

// Video is one search result.
type Video struct {
	ID    string
	Title string
}

type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Video, error)
	Transcript(ctx context.Context, videoID string) ([]TranscriptLine, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

type Option func(*client)

// WithBaseURL points the client at a different host (tests).
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

func NewClient(log *logger.Logger, opts ...Option) Client {
	c := &client{
		log:        log.With("client", "YouTube"),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	// A browser-looking UA keeps the full result page coming back.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube http %d for %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}

// initialData mirrors the slice of ytInitialData the search results live
// in. Arrays keep page order, so candidate ranking sees what a viewer
// would see first.
type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"title"`
}

// Search scrapes the results page and returns up to maxResults videos in
// page order.
func (c *client) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	u := c.baseURL + "/results?search_query=" + url.QueryEscape(query)
	body, err := c.fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	blob, err := extractInitialData(string(body))
	if err != nil {
		return nil, err
	}

	var videos []Video
	sections := blob.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	for _, section := range sections {
		for _, item := range section.ItemSectionRenderer.Contents {
			r := item.VideoRenderer
			if r == nil || r.VideoID == "" {
				continue
			}
			title := ""
			if len(r.Title.Runs) > 0 {
				title = r.Title.Runs[0].Text
			}
			videos = append(videos, Video{ID: r.VideoID, Title: title})
			if maxResults > 0 && len(videos) == maxResults {
				return videos, nil
			}
		}
	}
	return videos, nil
}

// extractInitialData cuts the ytInitialData JSON out of the page script.
func extractInitialData(page string) (*initialData, error) {
	const marker = "ytInitialData = "
	start := strings.Index(page, marker)
	if start < 0 {
		return nil, fmt.Errorf("youtube: ytInitialData not found")
	}
	rest := page[start+len(marker):]
	end := strings.Index(rest, ";</script>")
	if end < 0 {
		return nil, fmt.Errorf("youtube: ytInitialData not terminated")
	}
	var blob initialData
	if err := json.Unmarshal([]byte(rest[:end]), &blob); err != nil {
		return nil, fmt.Errorf("youtube: parse ytInitialData: %w", err)
	}
	return &blob, nil
}
