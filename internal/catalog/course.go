package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/types"
)

// NormalizeClassKey maps a lesson catalog class name to its lookup key:
// "Class 7" -> "class7".
func NormalizeClassKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// NormalizeCourseKey maps a course catalog class id to its lookup key:
// "Class 7" -> "class_7". The course file uses underscored keys, unlike
// the lesson datasets.
func NormalizeCourseKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// LoadCourses reads the course/quiz document. A missing or malformed file
// degrades to an empty catalog, logged but not fatal.
func LoadCourses(log *logger.Logger, path string) types.CourseCatalog {
	log = log.With("component", "CourseLoader")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Course data not loaded", "path", path, "error", err)
		return types.CourseCatalog{}
	}
	var cat types.CourseCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		log.Warn("Course data malformed", "path", path, "error", err)
		return types.CourseCatalog{}
	}
	log.Info("Course data loaded", "path", path, "classes", len(cat))
	return cat
}
