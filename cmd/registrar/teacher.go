// Teacher command group for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/provision"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	teacherFirstName     string
	teacherLastName      string
	teacherBirthday      string
	teacherAddress       string
	teacherCitizenID     string
	teacherEmail         string
	teacherPhone         string
	teacherFaculty       string
	teacherQualification string
	teacherSubjects      string
	teacherDesignation   string
	teacherExperience    int
	teacherPassword      string
	teacherByFaculty     string
	teacherByDesignation string
)

var teacherCmd = &cobra.Command{
	Use:   "teacher",
	Short: "Manage teachers",
}

var teacherAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Hire a new teacher",
	Long: `Add creates a teacher identity together with its login credentials.
If the credentials cannot be stored, the identity is rolled back.`,
	RunE: runTeacherAdd,
}

var teacherListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teachers",
	Args:  cobra.NoArgs,
	RunE:  runTeacherList,
}

var teacherGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one teacher",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeacherGet,
}

var teacherRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a teacher",
	Long: `Remove deletes a teacher identity. Credentials and the salary
record go with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeacherRemove,
}

func init() {
	teacherAddCmd.Flags().StringVar(&teacherFirstName, "first-name", "", "first name (required)")
	teacherAddCmd.Flags().StringVar(&teacherLastName, "last-name", "", "last name")
	teacherAddCmd.Flags().StringVar(&teacherBirthday, "birthday", "", "birthday as DD/MM/YYYY")
	teacherAddCmd.Flags().StringVar(&teacherAddress, "address", "", "postal address")
	teacherAddCmd.Flags().StringVar(&teacherCitizenID, "citizen-id", "", "citizen ID (unique)")
	teacherAddCmd.Flags().StringVar(&teacherEmail, "email", "", "email address (unique)")
	teacherAddCmd.Flags().StringVar(&teacherPhone, "phone", "", "phone number")
	teacherAddCmd.Flags().StringVar(&teacherFaculty, "faculty", "", "faculty ID")
	teacherAddCmd.Flags().StringVar(&teacherQualification, "qualification", "", "highest qualification")
	teacherAddCmd.Flags().StringVar(&teacherSubjects, "subjects", "", "specialization subjects")
	teacherAddCmd.Flags().StringVar(&teacherDesignation, "designation", "", "designation, e.g. professor")
	teacherAddCmd.Flags().IntVar(&teacherExperience, "experience", 0, "years of experience")
	teacherAddCmd.Flags().StringVar(&teacherPassword, "password", "", "login password (required)")
	_ = teacherAddCmd.MarkFlagRequired("first-name")
	_ = teacherAddCmd.MarkFlagRequired("password")

	teacherListCmd.Flags().StringVar(&teacherByFaculty, "faculty", "", "filter by faculty ID")
	teacherListCmd.Flags().StringVar(&teacherByDesignation, "designation", "", "filter by designation substring")

	teacherCmd.AddCommand(teacherAddCmd)
	teacherCmd.AddCommand(teacherListCmd)
	teacherCmd.AddCommand(teacherGetCmd)
	teacherCmd.AddCommand(teacherRemoveCmd)
}

func runTeacherAdd(cmd *cobra.Command, args []string) error {
	birthday, err := parseDate(teacherBirthday)
	if err != nil {
		return err
	}
	teacher := types.Teacher{
		User: types.User{
			FirstName:   teacherFirstName,
			LastName:    teacherLastName,
			Birthday:    birthday,
			Address:     teacherAddress,
			CitizenID:   teacherCitizenID,
			Email:       teacherEmail,
			PhoneNumber: teacherPhone,
			Role:        types.RoleTeacher,
			Status:      types.StatusActive,
		},
		FacultyID:              teacherFaculty,
		Qualification:          teacherQualification,
		SpecializationSubjects: teacherSubjects,
		Designation:            teacherDesignation,
		ExperienceYears:        teacherExperience,
	}

	created, err := provision.New(reg, newLogger()).CreateTeacher(teacher, teacherPassword)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created teacher: %s\n", created.ID)
	return nil
}

func runTeacherList(cmd *cobra.Command, args []string) error {
	var teachers []types.Teacher
	var err error
	switch {
	case teacherByFaculty != "":
		teachers, err = reg.Teachers().FindByFaculty(teacherByFaculty)
	case teacherByDesignation != "":
		teachers, err = reg.Teachers().FindByDesignation(teacherByDesignation)
	default:
		teachers, err = reg.Teachers().GetAll()
	}
	if err != nil {
		return fmt.Errorf("fetch teachers: %w", err)
	}
	if flagJSON {
		return printJSON(teachers)
	}
	if len(teachers) == 0 {
		fmt.Println("No teachers found.")
		return nil
	}
	rows := make([][]string, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, []string{
			shortID(t.ID), t.FullName(), orDash(t.Designation),
			orDash(shortID(t.FacultyID)), fmt.Sprintf("%d", t.ExperienceYears),
		})
	}
	renderTable([]string{"ID", "NAME", "DESIGNATION", "FACULTY", "YEARS"}, rows)
	fmt.Printf("Total: %d teacher(s)\n", len(teachers))
	return nil
}

func runTeacherGet(cmd *cobra.Command, args []string) error {
	t, err := reg.Teachers().GetByID(args[0])
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if flagJSON {
		return printJSON(t)
	}
	fmt.Println("ID:           ", t.ID)
	fmt.Println("Name:         ", t.FullName())
	fmt.Println("Designation:  ", orDash(t.Designation))
	fmt.Println("Qualification:", orDash(t.Qualification))
	fmt.Println("Subjects:     ", orDash(t.SpecializationSubjects))
	fmt.Println("Experience:   ", t.ExperienceYears)
	fmt.Println("Faculty:      ", orDash(t.FacultyID))
	fmt.Println("Status:       ", t.Status)
	return nil
}

func runTeacherRemove(cmd *cobra.Command, args []string) error {
	if _, err := reg.Teachers().Remove(args[0]); err != nil {
		return fmt.Errorf("remove teacher: %w", err)
	}
	fmt.Printf("Removed teacher: %s\n", args[0])
	return nil
}
