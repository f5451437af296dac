package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TimeValue is a point in a video given either as a bare number of seconds
// or as a "minutes:seconds" string. Anything else normalizes to zero.
type TimeValue struct {
	num      int
	str      string
	isNumber bool
}

func Seconds(n int) TimeValue {
	return TimeValue{num: n, isNumber: true}
}

func Timestamp(s string) TimeValue {
	return TimeValue{str: s}
}

// Raw returns the underlying value: an int for numeric time values,
// otherwise the original string (possibly empty).
func (t TimeValue) Raw() any {
	if t.isNumber {
		return t.num
	}
	return t.str
}

func (t *TimeValue) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		t.num = n
		t.isNumber = true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.str = s
		t.isNumber = false
		return nil
	}
	// Unrecognized forms are kept as zero rather than failing the document.
	*t = TimeValue{}
	return nil
}

func (t TimeValue) MarshalJSON() ([]byte, error) {
	if t.isNumber {
		return json.Marshal(t.num)
	}
	return json.Marshal(t.str)
}

// Segment is a labeled sub-range of a lesson video.
type Segment struct {
	Title string    `json:"title"`
	Start TimeValue `json:"start"`
	End   TimeValue `json:"end"`
}

// Topic is one lesson entry: a title, its video, and optional segments.
type Topic struct {
	Title    string    `json:"topic"`
	VideoURL string    `json:"url"`
	Segments []Segment `json:"segments,omitempty"`
}

// SubjectMap maps a subject name to its ordered topics. The matcher scans
// subjects in document order, so insertion order is preserved through JSON
// round-trips instead of using a plain map.
type SubjectMap struct {
	order  []string
	topics map[string][]Topic
}

func NewSubjectMap() *SubjectMap {
	return &SubjectMap{topics: map[string][]Topic{}}
}

// Set inserts or replaces a subject. A replaced subject keeps its original
// position, matching dict.update semantics of the source datasets.
func (m *SubjectMap) Set(name string, topics []Topic) {
	if m.topics == nil {
		m.topics = map[string][]Topic{}
	}
	if _, exists := m.topics[name]; !exists {
		m.order = append(m.order, name)
	}
	m.topics[name] = topics
}

func (m *SubjectMap) Get(name string) ([]Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// Names returns subject names in document order.
func (m *SubjectMap) Names() []string {
	return m.order
}

func (m *SubjectMap) Len() int {
	return len(m.order)
}

func (m *SubjectMap) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("subjects: expected object, got %v", tok)
	}
	m.order = nil
	m.topics = map[string][]Topic{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var topics []Topic
		if err := dec.Decode(&topics); err != nil {
			return fmt.Errorf("subject %q: %w", key, err)
		}
		m.Set(key, topics)
	}
	return nil
}

func (m *SubjectMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.topics[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LessonCatalog maps a class key ("class7") to its subjects, preserving
// class insertion order. Built once at startup and never mutated afterwards.
type LessonCatalog struct {
	order   []string
	classes map[string]*SubjectMap
}

func NewLessonCatalog() *LessonCatalog {
	return &LessonCatalog{classes: map[string]*SubjectMap{}}
}

func (c *LessonCatalog) Class(key string) (*SubjectMap, bool) {
	s, ok := c.classes[key]
	return s, ok
}

// SetClass inserts or replaces a whole class. Replacement keeps the original
// order position.
func (c *LessonCatalog) SetClass(key string, subjects *SubjectMap) {
	if c.classes == nil {
		c.classes = map[string]*SubjectMap{}
	}
	if _, exists := c.classes[key]; !exists {
		c.order = append(c.order, key)
	}
	c.classes[key] = subjects
}

// MergeSubjects folds subjects into an existing class key-by-key, creating
// the class when absent. Later documents win per subject key.
func (c *LessonCatalog) MergeSubjects(key string, subjects *SubjectMap) {
	existing, ok := c.Class(key)
	if !ok {
		c.SetClass(key, subjects)
		return
	}
	for _, name := range subjects.Names() {
		topics, _ := subjects.Get(name)
		existing.Set(name, topics)
	}
}

// ClassKeys returns class keys in insertion order.
func (c *LessonCatalog) ClassKeys() []string {
	return c.order
}

func (c *LessonCatalog) Len() int {
	return len(c.order)
}

func (c *LessonCatalog) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}
	c.order = nil
	c.classes = map[string]*SubjectMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		subjects := NewSubjectMap()
		if err := dec.Decode(subjects); err != nil {
			return fmt.Errorf("class %q: %w", key, err)
		}
		c.SetClass(key, subjects)
	}
	return nil
}

func (c *LessonCatalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(c.classes[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MatchResult is the outcome of a catalog search.
type MatchResult struct {
	VideoURL     string `json:"videoUrl"`
	StartSeconds int    `json:"startSeconds"`
	EndSeconds   int    `json:"endSeconds"`
	Title        string `json:"title"`
}

// NoMatchTitle marks the sentinel result returned when nothing in the
// catalog contains the query.
const NoMatchTitle = "No specific video found"

func NoMatch() MatchResult {
	return MatchResult{Title: NoMatchTitle}
}
