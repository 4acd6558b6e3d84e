// Course command group for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	courseName      string
	courseCredits   int
	courseFaculty   string
	courseByFaculty string
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new course",
	Long: `Add creates a new course.

Example:
  registrar course add --name "Databases" --credits 4 --faculty <id>`,
	RunE: runCourseAdd,
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Args:  cobra.NoArgs,
	RunE:  runCourseList,
}

var courseGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseGet,
}

var courseRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a course",
	Long:  `Remove deletes a course along with its enrollments and results.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseRemove,
}

func init() {
	courseAddCmd.Flags().StringVar(&courseName, "name", "", "course name (required)")
	courseAddCmd.Flags().IntVar(&courseCredits, "credits", 3, "credit hours (1-10)")
	courseAddCmd.Flags().StringVar(&courseFaculty, "faculty", "", "faculty ID")
	_ = courseAddCmd.MarkFlagRequired("name")

	courseListCmd.Flags().StringVar(&courseByFaculty, "faculty", "", "filter by faculty ID")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseGetCmd)
	courseCmd.AddCommand(courseRemoveCmd)
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	created, err := reg.Courses().Add(types.Course{
		Name:      courseName,
		Credits:   courseCredits,
		FacultyID: courseFaculty,
	})
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created course: %s\n", created.ID)
	return nil
}

func runCourseList(cmd *cobra.Command, args []string) error {
	var courses []types.Course
	var err error
	if courseByFaculty != "" {
		courses, err = reg.Courses().FindByFaculty(courseByFaculty)
	} else {
		courses, err = reg.Courses().GetAll()
	}
	if err != nil {
		return fmt.Errorf("fetch courses: %w", err)
	}
	if flagJSON {
		return printJSON(courses)
	}
	if len(courses) == 0 {
		fmt.Println("No courses found.")
		return nil
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			shortID(c.ID), c.Name, fmt.Sprintf("%d", c.Credits), orDash(shortID(c.FacultyID)),
		})
	}
	renderTable([]string{"ID", "NAME", "CREDITS", "FACULTY"}, rows)
	fmt.Printf("Total: %d course(s)\n", len(courses))
	return nil
}

func runCourseGet(cmd *cobra.Command, args []string) error {
	c, err := reg.Courses().GetByID(args[0])
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if flagJSON {
		return printJSON(c)
	}
	fmt.Println("ID:     ", c.ID)
	fmt.Println("Name:   ", c.Name)
	fmt.Println("Credits:", c.Credits)
	fmt.Println("Faculty:", orDash(c.FacultyID))
	return nil
}

func runCourseRemove(cmd *cobra.Command, args []string) error {
	if _, err := reg.Courses().Remove(args[0]); err != nil {
		return fmt.Errorf("remove course: %w", err)
	}
	fmt.Printf("Removed course: %s\n", args[0])
	return nil
}
