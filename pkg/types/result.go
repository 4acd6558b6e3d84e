package types

import "fmt"

// UngradedMarks is the sentinel for a result that has not been graded yet.
const UngradedMarks = -1

// Marks bounds. UngradedMarks is the only value below zero the schema and
// validation accept.
const (
	MinMarks = UngradedMarks
	MaxMarks = 100
)

// CourseResult is a junction row carrying the marks a student earned in a
// course and the letter grade derived from them. It is removed when
// either side is deleted.
type CourseResult struct {
	StudentID string
	CourseID  string
	Marks     int
	Grade     string
}

// Key returns the composite key.
func (r CourseResult) Key() EnrollmentKey {
	return EnrollmentKey{StudentID: r.StudentID, CourseID: r.CourseID}
}

// Validate checks result invariants. The marks range is enforced here so
// an out-of-range value never reaches the backend.
func (r CourseResult) Validate() error {
	if r.StudentID == "" {
		return &ValidationError{Field: "studentId", Reason: "must not be empty"}
	}
	if r.CourseID == "" {
		return &ValidationError{Field: "courseId", Reason: "must not be empty"}
	}
	if r.Marks < MinMarks || r.Marks > MaxMarks {
		return &ValidationError{
			Field:  "marks",
			Reason: fmt.Sprintf("must be between %d and %d", MinMarks, MaxMarks),
		}
	}
	return nil
}

// GradeFor derives the letter grade for the given marks. The ungraded
// sentinel yields "-".
func GradeFor(marks int) string {
	switch {
	case marks == UngradedMarks:
		return "-"
	case marks >= 90:
		return "A"
	case marks >= 80:
		return "B"
	case marks >= 70:
		return "C"
	case marks >= 60:
		return "D"
	default:
		return "F"
	}
}
