package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
)

// TranscriptLine is one caption cue. Start and Duration are in seconds.
type TranscriptLine struct {
	Text     string
	Start    float64
	Duration float64
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Transcript fetches the caption track of a video. It scrapes the watch
// page for the timedtext URL, then parses the cue XML. Videos without
// captions return an error; callers treat that as "play from the start".
func (c *client) Transcript(ctx context.Context, videoID string) ([]TranscriptLine, error) {
	page, err := c.fetch(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return nil, err
	}
	track, err := pickCaptionTrack(string(page))
	if err != nil {
		return nil, err
	}
	trackURL := track.BaseURL
	// Scraped URLs are JSON-escaped and may be host-relative.
	trackURL = strings.ReplaceAll(trackURL, "&amp;", "&")
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.baseURL + trackURL
	}
	body, err := c.fetch(ctx, trackURL)
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// pickCaptionTrack pulls the captionTracks array out of the player config
// and prefers an English track, falling back to the first one.
func pickCaptionTrack(page string) (*captionTrack, error) {
	const marker = `"captionTracks":`
	start := strings.Index(page, marker)
	if start < 0 {
		return nil, fmt.Errorf("youtube: no captions for video")
	}
	rest := page[start+len(marker):]
	end := strings.Index(rest, `]`)
	if end < 0 {
		return nil, fmt.Errorf("youtube: caption tracks not terminated")
	}
	var tracks []captionTrack
	if err := json.Unmarshal([]byte(rest[:end+1]), &tracks); err != nil {
		return nil, fmt.Errorf("youtube: parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("youtube: empty caption track list")
	}
	for i := range tracks {
		if strings.HasPrefix(tracks[i].LanguageCode, "en") {
			return &tracks[i], nil
		}
	}
	return &tracks[0], nil
}

type timedText struct {
	Texts []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedText(body []byte) ([]TranscriptLine, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("youtube: parse timedtext: %w", err)
	}
	lines := make([]TranscriptLine, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		lines = append(lines, TranscriptLine{Text: text, Start: t.Start, Duration: t.Duration})
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("youtube: transcript empty")
	}
	return lines, nil
}
