package services

import (
	"errors"
	"testing"

	"github.com/edulearn/edulearn-backend/internal/types"
)

func courseFixture() types.CourseCatalog {
	return types.CourseCatalog{
		"class_7": {
			{
				ID:    1,
				Title: "Photosynthesis",
				URL:   "https://youtu.be/photo7",
				Quiz: []types.QuizQuestion{
					{
						Question: "What do plants need for photosynthesis?",
						Options:  []string{"Sunlight", "Darkness", "Plastic", "Sand"},
						Answer:   "Sunlight",
					},
				},
			},
			{ID: 2, Title: "Cell Structure", URL: "https://youtu.be/cells7"},
		},
	}
}

func TestClassData(t *testing.T) {
	s := NewCourseService(testLogger(t), courseFixture())

	for _, id := range []string{"class_7", "Class 7", "CLASS 7"} {
		topics, err := s.ClassData(id)
		if err != nil {
			t.Fatalf("ClassData(%q): %v", id, err)
		}
		if len(topics) != 2 || topics[0].Title != "Photosynthesis" {
			t.Fatalf("ClassData(%q) = %+v", id, topics)
		}
	}
}

func TestClassDataUnknownClass(t *testing.T) {
	s := NewCourseService(testLogger(t), courseFixture())
	if _, err := s.ClassData("class_12"); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("err = %v, want ErrClassNotFound", err)
	}
}

func TestQuiz(t *testing.T) {
	s := NewCourseService(testLogger(t), courseFixture())

	topic, err := s.Quiz("Class 7", 1)
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if topic.Title != "Photosynthesis" || len(topic.Quiz) != 1 {
		t.Fatalf("topic = %+v", topic)
	}
	if topic.Quiz[0].Answer != "Sunlight" {
		t.Fatalf("answer = %q", topic.Quiz[0].Answer)
	}
}

func TestQuizNotFound(t *testing.T) {
	s := NewCourseService(testLogger(t), courseFixture())

	// Topic exists but carries no quiz content.
	if _, err := s.Quiz("class_7", 2); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("quizless topic: err = %v", err)
	}
	if _, err := s.Quiz("class_7", 99); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("unknown topic: err = %v", err)
	}
	if _, err := s.Quiz("class_12", 1); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("unknown class: err = %v", err)
	}
}
