package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/edulearn/edulearn-backend/internal/clients/embed"
	"github.com/edulearn/edulearn-backend/internal/clients/wikipedia"
	"github.com/edulearn/edulearn-backend/internal/clients/youtube"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/vectormath"
)

// ErrNoVideos is the one semantic-search failure that reaches the caller;
// everything else degrades to a partial result.
var ErrNoVideos = errors.New("no related videos found")

const (
	summaryNoArticle   = "No Wikipedia article found for this topic."
	summaryAmbiguous   = "Topic is ambiguous. Please be more specific."
	summaryUnavailable = "Could not fetch summary from Wikipedia."
	fullVideoCaption   = "Playing full video lesson."
)

const maxVideoCandidates = 5

// SemanticResult is a ranked video with a precise start point and
// supporting context.
type SemanticResult struct {
	VideoURL    string `json:"videoUrl"`
	Title       string `json:"title"`
	Timestamp   int    `json:"timestamp"`
	ShortNote   string `json:"short_note"`
	MatchedLine string `json:"matched_line"`
	AINote      string `json:"ai_note"`
}

type SemanticService interface {
	// UniversalSearch finds the best teaching video for a query outside
	// the curated catalog: encyclopedia background, live video search,
	// embedding-ranked titles, and a transcript-ranked start timestamp.
	UniversalSearch(ctx context.Context, query string) (*SemanticResult, error)
}

type semanticService struct {
	log      *logger.Logger
	wiki     wikipedia.Client
	videos   youtube.Client
	embedder embed.Client
}

func NewSemanticService(log *logger.Logger, wiki wikipedia.Client, videos youtube.Client, embedder embed.Client) SemanticService {
	return &semanticService{
		log:      log.With("service", "SemanticService"),
		wiki:     wiki,
		videos:   videos,
		embedder: embedder,
	}
}

func (s *semanticService) UniversalSearch(ctx context.Context, query string) (*SemanticResult, error) {
	shortNote := s.shortNote(ctx, query)

	candidates, err := s.videos.Search(ctx, query+" explanation education", maxVideoCandidates)
	if err != nil {
		s.log.Warn("Video search failed", "query", query, "error", err)
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoVideos
	}

	best, confidence := s.rankCandidates(ctx, query, candidates)

	start, matchedLine := s.preciseTimestamp(ctx, query, best.ID)

	return &SemanticResult{
		VideoURL:    fmt.Sprintf("https://www.youtube.com/embed/%s?start=%d&autoplay=1", best.ID, start),
		Title:       best.Title,
		Timestamp:   start,
		ShortNote:   shortNote,
		MatchedLine: matchedLine,
		AINote:      fmt.Sprintf("AI Confidence Score: %d%%", int(math.Round(confidence*100))),
	}, nil
}

// shortNote resolves background text for the query. Every failure mode
// maps to a fixed string; this step never blocks the search.
func (s *semanticService) shortNote(ctx context.Context, query string) string {
	titles, err := s.wiki.Search(ctx, query)
	if err != nil {
		s.log.Warn("Wikipedia search failed", "query", query, "error", err)
		return summaryUnavailable
	}
	if len(titles) == 0 {
		return summaryNoArticle
	}
	summary, err := s.wiki.Summary(ctx, titles[0], 3)
	if err == nil {
		return summary
	}
	var disambig *wikipedia.DisambiguationError
	if errors.As(err, &disambig) && len(disambig.Options) > 0 {
		if summary, err := s.wiki.Summary(ctx, disambig.Options[0], 3); err == nil {
			return summary
		}
		return summaryAmbiguous
	}
	s.log.Warn("Wikipedia summary failed", "title", titles[0], "error", err)
	return summaryUnavailable
}

// rankCandidates scores candidate titles against the query by embedding
// cosine similarity. If embedding fails the first candidate stands, with
// zero confidence.
func (s *semanticService) rankCandidates(ctx context.Context, query string, candidates []youtube.Video) (youtube.Video, float64) {
	inputs := make([]string, 0, len(candidates)+1)
	inputs = append(inputs, query)
	for _, c := range candidates {
		inputs = append(inputs, c.Title)
	}
	vecs, err := s.embedder.Embed(ctx, inputs)
	if err != nil {
		s.log.Warn("Embedding failed, keeping first candidate", "error", err)
		return candidates[0], 0
	}
	idx, score := vectormath.Rank(vecs[0], vecs[1:])
	if idx < 0 {
		return candidates[0], 0
	}
	return candidates[idx], score
}

// preciseTimestamp ranks transcript lines against the query to find where
// the topic is actually discussed. No transcript means start at zero.
func (s *semanticService) preciseTimestamp(ctx context.Context, query, videoID string) (int, string) {
	lines, err := s.videos.Transcript(ctx, videoID)
	if err != nil {
		s.log.Debug("Transcript unavailable, playing from start", "video", videoID, "error", err)
		return 0, fullVideoCaption
	}
	inputs := make([]string, 0, len(lines)+1)
	inputs = append(inputs, query)
	for _, l := range lines {
		inputs = append(inputs, l.Text)
	}
	vecs, err := s.embedder.Embed(ctx, inputs)
	if err != nil {
		s.log.Warn("Transcript embedding failed, playing from start", "error", err)
		return 0, fullVideoCaption
	}
	idx, _ := vectormath.Rank(vecs[0], vecs[1:])
	if idx < 0 {
		return 0, fullVideoCaption
	}
	return int(lines[idx].Start), lines[idx].Text
}
