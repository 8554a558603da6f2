package narrator

import (
	"context"
	"strings"
)

// TemplateAnnotator builds rationale text from fixed phrases. It is the
// fallback when no remote narrator is configured and the wrapped fallback
// of the remote one when its circuit is open.
type TemplateAnnotator struct{}

// NewTemplateAnnotator creates a TemplateAnnotator.
func NewTemplateAnnotator() *TemplateAnnotator {
	return &TemplateAnnotator{}
}

// Annotate renders a one-line rationale for the session.
func (a *TemplateAnnotator) Annotate(_ context.Context, item ItemContext) string {
	var parts []string

	switch {
	case item.Missed:
		parts = append(parts, "Deadline has passed, rescheduled first")
	case item.Deadline != nil:
		parts = append(parts, "Deadline is "+item.Deadline.Format("Mon, Jan 2"))
	default:
		parts = append(parts, "No deadline pressure")
	}

	if item.Important || item.Priority == "high" {
		parts = append(parts, "highly prioritized")
	}

	return strings.Join(parts, ", ") + "."
}
