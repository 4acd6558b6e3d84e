package types

// EnrollmentKey is the composite key shared by enrollments and course
// results.
type EnrollmentKey struct {
	StudentID string
	CourseID  string
}

// Enrollment is a junction row linking a student to a course. It is
// removed when either side is deleted.
type Enrollment struct {
	StudentID string
	CourseID  string
}

// Key returns the composite key.
func (e Enrollment) Key() EnrollmentKey {
	return EnrollmentKey{StudentID: e.StudentID, CourseID: e.CourseID}
}

// Validate checks enrollment invariants.
func (e Enrollment) Validate() error {
	if e.StudentID == "" {
		return &ValidationError{Field: "studentId", Reason: "must not be empty"}
	}
	if e.CourseID == "" {
		return &ValidationError{Field: "courseId", Reason: "must not be empty"}
	}
	return nil
}
