package services

import (
	"errors"

	"github.com/edulearn/edulearn-backend/internal/catalog"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/types"
)

var ErrQuizNotFound = errors.New("quiz not found")

type CourseService interface {
	// ClassData returns the course topics for a class id. The id is
	// case-insensitive with spaces mapped to underscores ("Class 7" ==
	// "class_7").
	ClassData(classID string) ([]types.CourseTopic, error)
	// Quiz returns the titled quiz of one topic. Topics without quiz
	// content count as not found.
	Quiz(classID string, topicID int) (*types.CourseTopic, error)
}

type courseService struct {
	log     *logger.Logger
	courses types.CourseCatalog
}

func NewCourseService(log *logger.Logger, courses types.CourseCatalog) CourseService {
	return &courseService{
		log:     log.With("service", "CourseService"),
		courses: courses,
	}
}

func (s *courseService) ClassData(classID string) ([]types.CourseTopic, error) {
	key := catalog.NormalizeCourseKey(classID)
	topics, ok := s.courses[key]
	if !ok {
		return nil, ErrClassNotFound
	}
	return topics, nil
}

func (s *courseService) Quiz(classID string, topicID int) (*types.CourseTopic, error) {
	key := catalog.NormalizeCourseKey(classID)
	topics, ok := s.courses[key]
	if !ok {
		return nil, ErrQuizNotFound
	}
	for i := range topics {
		if topics[i].ID == topicID {
			if len(topics[i].Quiz) == 0 {
				return nil, ErrQuizNotFound
			}
			return &topics[i], nil
		}
	}
	return nil, ErrQuizNotFound
}
