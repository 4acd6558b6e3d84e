// Result commands for the registrar CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	resultStudent string
	resultCourse  string
	resultMarks   int
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Manage course results",
}

var resultSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record or update marks for a student in a course",
	Long: `Set records the marks a student earned in a course; the letter
grade is derived automatically. Use --marks -1 for a result that has not
been graded yet.

Example:
  registrar result set --student <id> --course <id> --marks 87`,
	RunE: runResultSet,
}

var resultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List course results",
	Args:  cobra.NoArgs,
	RunE:  runResultList,
}

func init() {
	resultSetCmd.Flags().StringVar(&resultStudent, "student", "", "student ID (required)")
	resultSetCmd.Flags().StringVar(&resultCourse, "course", "", "course ID (required)")
	resultSetCmd.Flags().IntVar(&resultMarks, "marks", types.UngradedMarks, "marks 0-100, or -1 for ungraded")
	_ = resultSetCmd.MarkFlagRequired("student")
	_ = resultSetCmd.MarkFlagRequired("course")

	resultListCmd.Flags().StringVar(&resultStudent, "student", "", "filter by student ID")
	resultListCmd.Flags().StringVar(&resultCourse, "course", "", "filter by course ID")

	resultCmd.AddCommand(resultSetCmd)
	resultCmd.AddCommand(resultListCmd)
}

// runResultSet inserts the result, falling back to an update when the
// student/course pair already has one.
func runResultSet(cmd *cobra.Command, args []string) error {
	result := types.CourseResult{
		StudentID: resultStudent,
		CourseID:  resultCourse,
		Marks:     resultMarks,
	}

	stored, err := reg.CourseResults().Add(result)
	if errors.Is(err, types.ErrAlreadyExists) {
		if _, err := reg.CourseResults().Update(result); err != nil {
			return fmt.Errorf("update result: %w", err)
		}
		stored, err = reg.CourseResults().GetByID(result.Key())
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("set result: %w", err)
	}

	if flagJSON {
		return printJSON(stored)
	}
	fmt.Printf("Result for %s in %s: %d (%s)\n",
		stored.StudentID, stored.CourseID, stored.Marks, stored.Grade)
	return nil
}

func runResultList(cmd *cobra.Command, args []string) error {
	var results []types.CourseResult
	var err error
	switch {
	case resultStudent != "":
		results, err = reg.CourseResults().FindByStudent(resultStudent)
	case resultCourse != "":
		results, err = reg.CourseResults().FindByCourse(resultCourse)
	default:
		results, err = reg.CourseResults().GetAll()
	}
	if err != nil {
		return fmt.Errorf("fetch results: %w", err)
	}
	if flagJSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		marks := "-"
		if r.Marks != types.UngradedMarks {
			marks = fmt.Sprintf("%d", r.Marks)
		}
		rows = append(rows, []string{
			shortID(r.StudentID), shortID(r.CourseID), marks, r.Grade,
		})
	}
	renderTable([]string{"STUDENT", "COURSE", "MARKS", "GRADE"}, rows)
	fmt.Printf("Total: %d result(s)\n", len(results))
	return nil
}
