package domain

import "strings"

// Classification tags an agenda item as a kind of work or commitment. The
// original data carried the tag under inconsistent field names ("type" vs
// "classification"); resolution to this canonical enum happens once, at the
// ingestion boundary, never inside the scheduler.
type Classification string

const (
	ClassAssignment Classification = "assignment"
	ClassExam       Classification = "exam"
	ClassClass      Classification = "class"
	ClassMeeting    Classification = "meeting"
	ClassOther      Classification = "other"
)

// ParseClassification maps a raw tag to its canonical classification.
// Unknown tags resolve to ClassOther.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assignment", "task", "study":
		return ClassAssignment
	case "exam":
		return ClassExam
	case "class", "lecture":
		return ClassClass
	case "meeting":
		return ClassMeeting
	default:
		return ClassOther
	}
}

// IsDeferrable reports whether items of this classification represent
// flexible work the scheduler may move, as opposed to fixed commitments.
func (c Classification) IsDeferrable() bool {
	switch c {
	case ClassAssignment, ClassExam, ClassOther:
		return true
	default:
		return false
	}
}

// IsFixed reports whether items of this classification occupy immovable
// calendar time.
func (c Classification) IsFixed() bool {
	return c == ClassClass || c == ClassMeeting
}
