// Fee commands for the registrar CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var (
	feeStudent string
	feeTotal   float64
	feePaid    float64
	feeUnpaid  bool
)

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Manage fee records",
}

var feeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record or update a student's fee ledger",
	Long: `Set records the total and paid fee for a student, replacing any
existing ledger.

Example:
  registrar fee set --student <id> --total 4200 --paid 1000`,
	RunE: runFeeSet,
}

var feeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fee records",
	Args:  cobra.NoArgs,
	RunE:  runFeeList,
}

func init() {
	feeSetCmd.Flags().StringVar(&feeStudent, "student", "", "student ID (required)")
	feeSetCmd.Flags().Float64Var(&feeTotal, "total", 0, "total fee")
	feeSetCmd.Flags().Float64Var(&feePaid, "paid", 0, "paid fee")
	_ = feeSetCmd.MarkFlagRequired("student")

	feeListCmd.Flags().BoolVar(&feeUnpaid, "unpaid", false, "only records with an outstanding balance")

	feeCmd.AddCommand(feeSetCmd)
	feeCmd.AddCommand(feeListCmd)
}

func runFeeSet(cmd *cobra.Command, args []string) error {
	record := types.FeeRecord{StudentID: feeStudent, TotalFee: feeTotal, PaidFee: feePaid}

	_, err := reg.FeeRecords().Add(record)
	if errors.Is(err, types.ErrAlreadyExists) {
		_, err = reg.FeeRecords().Update(record)
	}
	if err != nil {
		return fmt.Errorf("set fee: %w", err)
	}

	if flagJSON {
		return printJSON(record)
	}
	fmt.Printf("Fee for %s: %.2f paid of %.2f (outstanding %.2f)\n",
		record.StudentID, record.PaidFee, record.TotalFee, record.Outstanding())
	return nil
}

func runFeeList(cmd *cobra.Command, args []string) error {
	var records []types.FeeRecord
	var err error
	if feeUnpaid {
		records, err = reg.FeeRecords().FindUnpaid()
	} else {
		records, err = reg.FeeRecords().GetAll()
	}
	if err != nil {
		return fmt.Errorf("fetch fees: %w", err)
	}
	if flagJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No fee records found.")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, f := range records {
		rows = append(rows, []string{
			shortID(f.StudentID),
			fmt.Sprintf("%.2f", f.TotalFee),
			fmt.Sprintf("%.2f", f.PaidFee),
			fmt.Sprintf("%.2f", f.Outstanding()),
		})
	}
	renderTable([]string{"STUDENT", "TOTAL", "PAID", "OUTSTANDING"}, rows)
	fmt.Printf("Total: %d fee record(s)\n", len(records))
	return nil
}
