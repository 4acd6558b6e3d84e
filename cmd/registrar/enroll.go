// Enrollment commands for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	enrollStudent string
	enrollCourse  string
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a student in a course",
	Long: `Enroll links a student to a course.

Example:
  registrar enroll --student <id> --course <id>`,
	RunE: runEnroll,
}

var unenrollCmd = &cobra.Command{
	Use:   "unenroll",
	Short: "Remove a student from a course",
	RunE:  runUnenroll,
}

func init() {
	for _, cmd := range []*cobra.Command{enrollCmd, unenrollCmd} {
		cmd.Flags().StringVar(&enrollStudent, "student", "", "student ID (required)")
		cmd.Flags().StringVar(&enrollCourse, "course", "", "course ID (required)")
		_ = cmd.MarkFlagRequired("student")
		_ = cmd.MarkFlagRequired("course")
	}
}

func runEnroll(cmd *cobra.Command, args []string) error {
	e, err := reg.Enrollments().Add(types.Enrollment{
		StudentID: enrollStudent,
		CourseID:  enrollCourse,
	})
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if flagJSON {
		return printJSON(e)
	}
	fmt.Printf("Enrolled student %s in course %s\n", e.StudentID, e.CourseID)
	return nil
}

func runUnenroll(cmd *cobra.Command, args []string) error {
	key := types.EnrollmentKey{StudentID: enrollStudent, CourseID: enrollCourse}
	if _, err := reg.Enrollments().Remove(key); err != nil {
		return fmt.Errorf("unenroll: %w", err)
	}
	fmt.Printf("Unenrolled student %s from course %s\n", enrollStudent, enrollCourse)
	return nil
}
