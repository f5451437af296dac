package services

import (
	"context"
	"errors"

	"github.com/edulearn/edulearn-backend/internal/catalog"
	"github.com/edulearn/edulearn-backend/internal/clients/gemini"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/types"
)

var ErrClassNotFound = errors.New("class not found")

// SmartSearchResult is the combined catalog hit and AI explanation for one
// question.
type SmartSearchResult struct {
	Topic        string `json:"topic"`
	Explanation  string `json:"explanation"`
	VideoURL     string `json:"videoUrl"`
	StartSeconds int    `json:"startSeconds"`
	EndSeconds   int    `json:"endSeconds"`
}

type SearchService interface {
	// SmartSearch looks the question up in the lesson catalog and asks for
	// an explanation regardless of whether a video was found. The student's
	// class shapes only the explanation, never the catalog scan.
	SmartSearch(ctx context.Context, question, studentClass string) SmartSearchResult
	// ClassVideos returns the subjects of one class. The name is
	// case-insensitive and space-insensitive ("Class 7" == "class7").
	ClassVideos(className string) (*types.SubjectMap, error)
}

type searchService struct {
	log       *logger.Logger
	catalog   *types.LessonCatalog
	explainer gemini.Explainer
}

func NewSearchService(log *logger.Logger, cat *types.LessonCatalog, explainer gemini.Explainer) SearchService {
	return &searchService{
		log:       log.With("service", "SearchService"),
		catalog:   cat,
		explainer: explainer,
	}
}

func (s *searchService) SmartSearch(ctx context.Context, question, studentClass string) SmartSearchResult {
	match := catalog.Find(s.catalog, question)
	if match.Title == types.NoMatchTitle {
		s.log.Debug("No catalog match", "question", question)
	}
	explanation := s.explainer.Explain(ctx, question, studentClass)
	return SmartSearchResult{
		Topic:        match.Title,
		Explanation:  explanation,
		VideoURL:     match.VideoURL,
		StartSeconds: match.StartSeconds,
		EndSeconds:   match.EndSeconds,
	}
}

func (s *searchService) ClassVideos(className string) (*types.SubjectMap, error) {
	key := catalog.NormalizeClassKey(className)
	subjects, ok := s.catalog.Class(key)
	if !ok {
		s.log.Debug("Class lookup miss", "requested", key, "available", s.catalog.ClassKeys())
		return nil, ErrClassNotFound
	}
	return subjects, nil
}
