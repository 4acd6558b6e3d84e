// Faculty command group for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var facultyName string

var facultyCmd = &cobra.Command{
	Use:   "faculty",
	Short: "Manage faculties",
}

var facultyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new faculty",
	Long: `Add creates a new faculty with the given name.

Example:
  registrar faculty add --name "Computer Science"`,
	RunE: runFacultyAdd,
}

var facultyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all faculties",
	Args:  cobra.NoArgs,
	RunE:  runFacultyList,
}

var facultyGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one faculty",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacultyGet,
}

var facultyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a faculty",
	Long: `Remove deletes a faculty. Students, teachers, and courses that
reference it are kept with their faculty reference cleared.`,
	Args: cobra.ExactArgs(1),
	RunE: runFacultyRemove,
}

func init() {
	facultyAddCmd.Flags().StringVar(&facultyName, "name", "", "faculty name (required)")
	_ = facultyAddCmd.MarkFlagRequired("name")

	facultyCmd.AddCommand(facultyAddCmd)
	facultyCmd.AddCommand(facultyListCmd)
	facultyCmd.AddCommand(facultyGetCmd)
	facultyCmd.AddCommand(facultyRemoveCmd)
}

func runFacultyAdd(cmd *cobra.Command, args []string) error {
	created, err := reg.Faculties().Add(types.Faculty{Name: facultyName})
	if err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created faculty: %s\n", created.ID)
	return nil
}

func runFacultyList(cmd *cobra.Command, args []string) error {
	faculties, err := reg.Faculties().GetAll()
	if err != nil {
		return fmt.Errorf("fetch faculties: %w", err)
	}
	if flagJSON {
		return printJSON(faculties)
	}
	if len(faculties) == 0 {
		fmt.Println("No faculties found.")
		return nil
	}
	rows := make([][]string, 0, len(faculties))
	for _, f := range faculties {
		rows = append(rows, []string{shortID(f.ID), f.Name})
	}
	renderTable([]string{"ID", "NAME"}, rows)
	fmt.Printf("Total: %d faculty(ies)\n", len(faculties))
	return nil
}

func runFacultyGet(cmd *cobra.Command, args []string) error {
	f, err := reg.Faculties().GetByID(args[0])
	if err != nil {
		return fmt.Errorf("get faculty: %w", err)
	}
	if flagJSON {
		return printJSON(f)
	}
	fmt.Println("ID:  ", f.ID)
	fmt.Println("Name:", f.Name)
	return nil
}

func runFacultyRemove(cmd *cobra.Command, args []string) error {
	if _, err := reg.Faculties().Remove(args[0]); err != nil {
		return fmt.Errorf("remove faculty: %w", err)
	}
	fmt.Printf("Removed faculty: %s\n", args[0])
	return nil
}
