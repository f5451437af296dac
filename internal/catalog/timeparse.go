package catalog

import (
	"strconv"
	"strings"

	"github.com/edulearn/edulearn-backend/internal/types"
)

// ToSeconds normalizes a lesson time value to whole seconds. Numeric values
// pass through unchanged. Strings are read as "minutes:seconds"; any fields
// past the second are ignored (there is no hour handling in the datasets).
// Malformed values normalize to 0, never an error.
func ToSeconds(v types.TimeValue) int {
	switch raw := v.Raw().(type) {
	case int:
		return raw
	case string:
		return clockToSeconds(raw)
	}
	return 0
}

func clockToSeconds(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}
