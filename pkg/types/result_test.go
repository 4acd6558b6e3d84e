package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		marks int
		want  string
	}{
		{UngradedMarks, "-"},
		{0, "F"},
		{59, "F"},
		{60, "D"},
		{69, "D"},
		{70, "C"},
		{79, "C"},
		{80, "B"},
		{89, "B"},
		{90, "A"},
		{100, "A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.marks), "marks %d", tt.marks)
	}
}

func TestCourseResultValidate(t *testing.T) {
	valid := CourseResult{StudentID: "s1", CourseID: "c1", Marks: 75}
	require.NoError(t, valid.Validate())

	ungraded := CourseResult{StudentID: "s1", CourseID: "c1", Marks: UngradedMarks}
	require.NoError(t, ungraded.Validate())

	var verr *ValidationError

	tooHigh := valid
	tooHigh.Marks = 150
	require.ErrorAs(t, tooHigh.Validate(), &verr)
	assert.Equal(t, "marks", verr.Field)

	tooLow := valid
	tooLow.Marks = -2
	require.ErrorAs(t, tooLow.Validate(), &verr)
	assert.Equal(t, "marks", verr.Field)

	noStudent := valid
	noStudent.StudentID = ""
	require.ErrorAs(t, noStudent.Validate(), &verr)
	assert.Equal(t, "studentId", verr.Field)
}

func TestEnrollmentKey(t *testing.T) {
	e := Enrollment{StudentID: "s1", CourseID: "c1"}
	r := CourseResult{StudentID: "s1", CourseID: "c1", Marks: 80}
	assert.Equal(t, e.Key(), r.Key())
	assert.Equal(t, EnrollmentKey{StudentID: "s1", CourseID: "c1"}, e.Key())
}
