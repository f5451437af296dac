package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/types"
)

var classKeyPattern = regexp.MustCompile(`^class\d+$`)

// LoadAll reads every candidate dataset document under dir and merges them
// into one catalog. Two document shapes are recognized:
//
//   - {"class": "7", "subjects": {...}}: subjects are merged into the
//     "class7" entry key-by-key, later files overriding earlier ones.
//   - {"class6": {...}, "class7": {...}}: class entries are merged
//     directly, whole-class override on collision.
//
// Anything else parses fine but contributes nothing. Unreadable or
// malformed documents are logged and skipped; startup never fails here.
func LoadAll(log *logger.Logger, dir string, files []string) *types.LessonCatalog {
	log = log.With("component", "CatalogLoader")
	cat := types.NewLessonCatalog()
	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := loadOne(cat, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug("Dataset file not present, skipping", "file", name)
				continue
			}
			log.Warn("Failed to load dataset file", "file", name, "error", err)
			continue
		}
		log.Info("Loaded dataset file", "file", name)
	}
	log.Info("Lesson catalog ready", "classes", cat.Len())
	return cat
}

func loadOne(cat *types.LessonCatalog, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	classRaw, hasClass := top["class"]
	subjectsRaw, hasSubjects := top["subjects"]
	if hasClass && hasSubjects {
		key := "class" + classLabel(classRaw)
		subjects := types.NewSubjectMap()
		if err := json.Unmarshal(subjectsRaw, subjects); err != nil {
			return fmt.Errorf("subjects: %w", err)
		}
		cat.MergeSubjects(key, subjects)
		return nil
	}

	for key := range top {
		if classKeyPattern.MatchString(key) {
			whole := types.NewLessonCatalog()
			if err := json.Unmarshal(data, whole); err != nil {
				return err
			}
			for _, k := range whole.ClassKeys() {
				subjects, _ := whole.Class(k)
				cat.SetClass(k, subjects)
			}
			return nil
		}
	}

	// Unrecognized shape: parsed fine, merges nothing.
	return nil
}

// classLabel renders the "class" field of a shape-A document, which appears
// both as a string ("7") and as a bare number (7) in the wild.
func classLabel(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.Itoa(int(t))
	}
	return ""
}
