package types

// QuizQuestion is one multiple-choice question attached to a course topic.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// CourseTopic is one entry of the course material catalog. Quiz is empty
// for topics that only carry a video.
type CourseTopic struct {
	ID    int            `json:"id"`
	Title string         `json:"title"`
	URL   string         `json:"url,omitempty"`
	Quiz  []QuizQuestion `json:"quiz,omitempty"`
}

// CourseCatalog maps a class key ("class_7") to its topic list. Like the
// lesson catalog it is loaded once at startup and read-only afterwards.
type CourseCatalog map[string][]CourseTopic
