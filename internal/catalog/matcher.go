package catalog

import (
	"strings"

	"github.com/edulearn/edulearn-backend/internal/types"
)

// Find scans every class, subject, topic, and segment for a case-insensitive
// substring match of query inside the title. The caller's class does not
// restrict the scan.
//
// Precedence is deliberate and mirrors the original search behavior:
// a segment title match overrides any topic match and stops the scan
// immediately, while a topic-only match records a result and keeps
// scanning, so a later matching topic replaces an earlier one.
// An empty query is a substring of every title.
func Find(cat *types.LessonCatalog, query string) types.MatchResult {
	q := strings.ToLower(query)
	result := types.NoMatch()
	for _, classKey := range cat.ClassKeys() {
		subjects, _ := cat.Class(classKey)
		for _, subject := range subjects.Names() {
			topics, _ := subjects.Get(subject)
			for _, topic := range topics {
				if strings.Contains(strings.ToLower(topic.Title), q) {
					start, end := 0, 0
					if len(topic.Segments) > 0 {
						start = ToSeconds(topic.Segments[0].Start)
						end = ToSeconds(topic.Segments[0].End)
					}
					result = types.MatchResult{
						VideoURL:     topic.VideoURL,
						StartSeconds: start,
						EndSeconds:   end,
						Title:        topic.Title,
					}
				}
				for _, seg := range topic.Segments {
					if strings.Contains(strings.ToLower(seg.Title), q) {
						return types.MatchResult{
							VideoURL:     topic.VideoURL,
							StartSeconds: ToSeconds(seg.Start),
							EndSeconds:   ToSeconds(seg.End),
							Title:        seg.Title,
						}
					}
				}
			}
		}
	}
	return result
}
