package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// UGC strips disallowed markup from user-supplied rich text.
func UGC(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}

// UGCPtr sanitizes optional text, collapsing blank results to nil.
func UGCPtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := UGC(*input)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
