// Salary commands for the registrar CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	salaryTeacher string
	salaryPay     float64
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Manage salary records",
}

var salarySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record or update a teacher's salary",
	Long: `Set records the basic monthly pay for a teacher, replacing any
existing record.

Example:
  registrar salary set --teacher <id> --pay 5400`,
	RunE: runSalarySet,
}

var salaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List salary records",
	Args:  cobra.NoArgs,
	RunE:  runSalaryList,
}

func init() {
	salarySetCmd.Flags().StringVar(&salaryTeacher, "teacher", "", "teacher ID (required)")
	salarySetCmd.Flags().Float64Var(&salaryPay, "pay", 0, "basic monthly pay")
	_ = salarySetCmd.MarkFlagRequired("teacher")

	salaryCmd.AddCommand(salarySetCmd)
	salaryCmd.AddCommand(salaryListCmd)
}

func runSalarySet(cmd *cobra.Command, args []string) error {
	record := types.SalaryRecord{TeacherID: salaryTeacher, BasicMonthlyPay: salaryPay}

	_, err := reg.SalaryRecords().Add(record)
	if errors.Is(err, types.ErrAlreadyExists) {
		_, err = reg.SalaryRecords().Update(record)
	}
	if err != nil {
		return fmt.Errorf("set salary: %w", err)
	}

	if flagJSON {
		return printJSON(record)
	}
	fmt.Printf("Salary for %s: %.2f/month\n", record.TeacherID, record.BasicMonthlyPay)
	return nil
}

func runSalaryList(cmd *cobra.Command, args []string) error {
	records, err := reg.SalaryRecords().GetAll()
	if err != nil {
		return fmt.Errorf("fetch salaries: %w", err)
	}
	if flagJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No salary records found.")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, s := range records {
		rows = append(rows, []string{shortID(s.TeacherID), fmt.Sprintf("%.2f", s.BasicMonthlyPay)})
	}
	renderTable([]string{"TEACHER", "MONTHLY PAY"}, rows)
	fmt.Printf("Total: %d salary record(s)\n", len(records))
	return nil
}
