package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/edulearn/edulearn-backend/internal/types"
)

type fakeExplainer struct {
	reply         string
	asked         string
	askedForClass string
}

func (f *fakeExplainer) Explain(_ context.Context, question, studentClass string) string {
	f.asked = question
	f.askedForClass = studentClass
	return f.reply
}

const searchCatalogJSON = `{
	"class7": {
		"Science": [
			{
				"topic": "Photosynthesis",
				"url": "https://youtu.be/photo7",
				"segments": [
					{"title": "Light Reaction", "start": "1:00", "end": "2:30"}
				]
			}
		]
	}
}`

func searchCatalog(t *testing.T) *types.LessonCatalog {
	t.Helper()
	var cat types.LessonCatalog
	if err := json.Unmarshal([]byte(searchCatalogJSON), &cat); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	return &cat
}

func TestSmartSearchMatch(t *testing.T) {
	explainer := &fakeExplainer{reply: "Plants use light to make food."}
	s := NewSearchService(testLogger(t), searchCatalog(t), explainer)

	got := s.SmartSearch(context.Background(), "light reaction", "class7")
	if got.Topic != "Light Reaction" {
		t.Fatalf("topic = %q", got.Topic)
	}
	if got.VideoURL != "https://youtu.be/photo7" || got.StartSeconds != 60 || got.EndSeconds != 150 {
		t.Fatalf("video = %q %d..%d", got.VideoURL, got.StartSeconds, got.EndSeconds)
	}
	if got.Explanation != "Plants use light to make food." {
		t.Fatalf("explanation = %q", got.Explanation)
	}
	if explainer.asked != "light reaction" || explainer.askedForClass != "class7" {
		t.Fatalf("explainer got %q for %q", explainer.asked, explainer.askedForClass)
	}
}

func TestSmartSearchNoMatchStillExplains(t *testing.T) {
	explainer := &fakeExplainer{reply: "A quark is a tiny particle."}
	s := NewSearchService(testLogger(t), searchCatalog(t), explainer)

	got := s.SmartSearch(context.Background(), "quarks", "class8")
	if got.Topic != types.NoMatchTitle {
		t.Fatalf("topic = %q", got.Topic)
	}
	if got.VideoURL != "" || got.StartSeconds != 0 || got.EndSeconds != 0 {
		t.Fatalf("video = %q %d..%d, want empty sentinel", got.VideoURL, got.StartSeconds, got.EndSeconds)
	}
	// The explanation is attempted even without a video hit.
	if got.Explanation != "A quark is a tiny particle." {
		t.Fatalf("explanation = %q", got.Explanation)
	}
}

func TestClassVideosNormalizesName(t *testing.T) {
	s := NewSearchService(testLogger(t), searchCatalog(t), &fakeExplainer{})

	for _, name := range []string{"class7", "Class 7", "CLASS 7", " class 7 "} {
		subjects, err := s.ClassVideos(name)
		if err != nil {
			t.Fatalf("ClassVideos(%q): %v", name, err)
		}
		if _, ok := subjects.Get("Science"); !ok {
			t.Fatalf("ClassVideos(%q) missing Science subject", name)
		}
	}
}

func TestClassVideosUnknownClass(t *testing.T) {
	s := NewSearchService(testLogger(t), searchCatalog(t), &fakeExplainer{})
	if _, err := s.ClassVideos("class12"); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("err = %v, want ErrClassNotFound", err)
	}
}
