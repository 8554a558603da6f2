// Package narrator produces the optional free-text rationale attached to
// generated study sessions. The text is cosmetic annotation: scheduling
// never depends on it, and every implementation degrades to an empty
// string rather than an error reaching the planner.
package narrator

import (
	"context"
	"time"
)

// ItemContext is what the narrator knows about the item a session serves.
type ItemContext struct {
	Title     string
	Deadline  *time.Time
	Priority  string
	Important bool
	Missed    bool
}

// Annotator explains why a session was placed.
type Annotator interface {
	Annotate(ctx context.Context, item ItemContext) string
}
