package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// SalaryRecord SQL templates. Insert parameter order: teacher_id,
// basic_monthly_pay.
const (
	selectSalary     = `SELECT teacher_id, basic_monthly_pay FROM salary_records WHERE teacher_id = ?`
	selectAllSalary  = `SELECT teacher_id, basic_monthly_pay FROM salary_records ORDER BY teacher_id`
	insertSalary     = `INSERT INTO salary_records (teacher_id, basic_monthly_pay) VALUES (?, ?)`
	updateSalary     = `UPDATE salary_records SET basic_monthly_pay = ? WHERE teacher_id = ?`
	deleteSalaryStmt = `DELETE FROM salary_records WHERE teacher_id = ?`
	existsSalary     = `SELECT 1 FROM salary_records WHERE teacher_id = ?`
)

func parseSalary(row dbvalue.Row) (types.SalaryRecord, error) {
	var s types.SalaryRecord
	var err error
	if s.TeacherID, err = row.Text("teacher_id"); err != nil {
		return types.SalaryRecord{}, &types.ParseError{Entity: "salaryRecord", Field: "teacher_id", Err: err}
	}
	if s.BasicMonthlyPay, err = row.Real("basic_monthly_pay"); err != nil {
		return types.SalaryRecord{}, &types.ParseError{Entity: "salaryRecord", Field: "basic_monthly_pay", Err: err}
	}
	return s, nil
}

func salaryRow(s types.SalaryRecord) dbvalue.Row {
	return dbvalue.Row{
		"teacher_id":        dbvalue.Text(s.TeacherID),
		"basic_monthly_pay": dbvalue.Real(s.BasicMonthlyPay),
	}
}

func salaryInsertParams(s types.SalaryRecord) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(s.TeacherID), dbvalue.Real(s.BasicMonthlyPay))
}

func salaryUpdateParams(s types.SalaryRecord) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Real(s.BasicMonthlyPay), dbvalue.Text(s.TeacherID))
}

type salaryDAO struct {
	a *Adapter
}

func (d *salaryDAO) GetByID(teacherID string) (types.SalaryRecord, error) {
	if teacherID == "" {
		return types.SalaryRecord{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectSalary, dbvalue.Params(dbvalue.Text(teacherID)))
	if err != nil {
		return types.SalaryRecord{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.SalaryRecord{}, fmt.Errorf("salary record %s: %w", teacherID, types.ErrNotFound)
	}
	return parseSalary(row)
}

func (d *salaryDAO) GetAll() ([]types.SalaryRecord, error) {
	table, err := d.a.Query(selectAllSalary, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.SalaryRecord, 0, len(table))
	for _, row := range table {
		s, err := parseSalary(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *salaryDAO) Add(s types.SalaryRecord) (types.SalaryRecord, error) {
	if err := s.Validate(); err != nil {
		return types.SalaryRecord{}, err
	}
	if _, err := d.a.Exec(insertSalary, salaryInsertParams(s)); err != nil {
		if isUniqueViolation(err) {
			return types.SalaryRecord{}, fmt.Errorf("salary record %s: %w", s.TeacherID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.SalaryRecord{}, fmt.Errorf("salary record %s references a missing teacher: %w", s.TeacherID, err)
		}
		return types.SalaryRecord{}, err
	}
	return s, nil
}

func (d *salaryDAO) Update(s types.SalaryRecord) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	affected, err := d.a.Exec(updateSalary, salaryUpdateParams(s))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("salary record %s: %w", s.TeacherID, types.ErrNotFound)
	}
	return true, nil
}

func (d *salaryDAO) Remove(teacherID string) (bool, error) {
	if teacherID == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteSalaryStmt, dbvalue.Params(dbvalue.Text(teacherID)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("salary record %s: %w", teacherID, types.ErrNotFound)
	}
	return true, nil
}

func (d *salaryDAO) Exists(teacherID string) (bool, error) {
	table, err := d.a.Query(existsSalary, dbvalue.Params(dbvalue.Text(teacherID)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}
