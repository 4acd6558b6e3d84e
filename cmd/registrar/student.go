// Student command group for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/provision"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	studentFirstName string
	studentLastName  string
	studentBirthday  string
	studentAddress   string
	studentCitizenID string
	studentEmail     string
	studentPhone     string
	studentFaculty   string
	studentPassword  string
	studentByFaculty string
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage students",
}

var studentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Enroll a new student",
	Long: `Add creates a student identity together with its login credentials.
If the credentials cannot be stored, the identity is rolled back.

Example:
  registrar student add --first-name Ada --last-name Lovelace \
    --email ada@example.edu --password s3cret`,
	RunE: runStudentAdd,
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	Args:  cobra.NoArgs,
	RunE:  runStudentList,
}

var studentGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one student",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentGet,
}

var studentRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a student",
	Long: `Remove deletes a student identity. Credentials, enrollments,
results, and the fee record go with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runStudentRemove,
}

func init() {
	studentAddCmd.Flags().StringVar(&studentFirstName, "first-name", "", "first name (required)")
	studentAddCmd.Flags().StringVar(&studentLastName, "last-name", "", "last name")
	studentAddCmd.Flags().StringVar(&studentBirthday, "birthday", "", "birthday as DD/MM/YYYY")
	studentAddCmd.Flags().StringVar(&studentAddress, "address", "", "postal address")
	studentAddCmd.Flags().StringVar(&studentCitizenID, "citizen-id", "", "citizen ID (unique)")
	studentAddCmd.Flags().StringVar(&studentEmail, "email", "", "email address (unique)")
	studentAddCmd.Flags().StringVar(&studentPhone, "phone", "", "phone number")
	studentAddCmd.Flags().StringVar(&studentFaculty, "faculty", "", "faculty ID")
	studentAddCmd.Flags().StringVar(&studentPassword, "password", "", "login password (required)")
	_ = studentAddCmd.MarkFlagRequired("first-name")
	_ = studentAddCmd.MarkFlagRequired("password")

	studentListCmd.Flags().StringVar(&studentByFaculty, "faculty", "", "filter by faculty ID")

	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentListCmd)
	studentCmd.AddCommand(studentGetCmd)
	studentCmd.AddCommand(studentRemoveCmd)
}

func runStudentAdd(cmd *cobra.Command, args []string) error {
	birthday, err := parseDate(studentBirthday)
	if err != nil {
		return err
	}
	student := types.Student{
		User: types.User{
			FirstName:   studentFirstName,
			LastName:    studentLastName,
			Birthday:    birthday,
			Address:     studentAddress,
			CitizenID:   studentCitizenID,
			Email:       studentEmail,
			PhoneNumber: studentPhone,
			Role:        types.RoleStudent,
			Status:      types.StatusActive,
		},
		FacultyID: studentFaculty,
	}

	created, err := provision.New(reg, newLogger()).CreateStudent(student, studentPassword)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created student: %s\n", created.ID)
	return nil
}

func runStudentList(cmd *cobra.Command, args []string) error {
	var students []types.Student
	var err error
	if studentByFaculty != "" {
		students, err = reg.Students().FindByFaculty(studentByFaculty)
	} else {
		students, err = reg.Students().GetAll()
	}
	if err != nil {
		return fmt.Errorf("fetch students: %w", err)
	}
	if flagJSON {
		return printJSON(students)
	}
	if len(students) == 0 {
		fmt.Println("No students found.")
		return nil
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			shortID(s.ID), s.FullName(), orDash(s.Email),
			orDash(shortID(s.FacultyID)), s.Status.String(),
		})
	}
	renderTable([]string{"ID", "NAME", "EMAIL", "FACULTY", "STATUS"}, rows)
	fmt.Printf("Total: %d student(s)\n", len(students))
	return nil
}

func runStudentGet(cmd *cobra.Command, args []string) error {
	s, err := reg.Students().GetByID(args[0])
	if err != nil {
		return fmt.Errorf("get student: %w", err)
	}
	if flagJSON {
		return printJSON(s)
	}
	fmt.Println("ID:      ", s.ID)
	fmt.Println("Name:    ", s.FullName())
	fmt.Println("Birthday:", orDash(s.Birthday.String()))
	fmt.Println("Email:   ", orDash(s.Email))
	fmt.Println("Phone:   ", orDash(s.PhoneNumber))
	fmt.Println("Faculty: ", orDash(s.FacultyID))
	fmt.Println("Status:  ", s.Status)
	return nil
}

func runStudentRemove(cmd *cobra.Command, args []string) error {
	if _, err := reg.Students().Remove(args[0]); err != nil {
		return fmt.Errorf("remove student: %w", err)
	}
	fmt.Printf("Removed student: %s\n", args[0])
	return nil
}
