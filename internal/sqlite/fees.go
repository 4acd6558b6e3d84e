package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// FeeRecord SQL templates. Insert parameter order: student_id, total_fee,
// paid_fee. Update sets the fees with the primary key last.
const (
	selectFee       = `SELECT student_id, total_fee, paid_fee FROM fee_records WHERE student_id = ?`
	selectAllFees   = `SELECT student_id, total_fee, paid_fee FROM fee_records ORDER BY student_id`
	selectFeeUnpaid = `SELECT student_id, total_fee, paid_fee FROM fee_records WHERE paid_fee < total_fee ORDER BY student_id`
	insertFee       = `INSERT INTO fee_records (student_id, total_fee, paid_fee) VALUES (?, ?, ?)`
	updateFee       = `UPDATE fee_records SET total_fee = ?, paid_fee = ? WHERE student_id = ?`
	deleteFee       = `DELETE FROM fee_records WHERE student_id = ?`
	existsFee       = `SELECT 1 FROM fee_records WHERE student_id = ?`
)

func parseFee(row dbvalue.Row) (types.FeeRecord, error) {
	var f types.FeeRecord
	var err error
	if f.StudentID, err = row.Text("student_id"); err != nil {
		return types.FeeRecord{}, &types.ParseError{Entity: "feeRecord", Field: "student_id", Err: err}
	}
	if f.TotalFee, err = row.Real("total_fee"); err != nil {
		return types.FeeRecord{}, &types.ParseError{Entity: "feeRecord", Field: "total_fee", Err: err}
	}
	if f.PaidFee, err = row.Real("paid_fee"); err != nil {
		return types.FeeRecord{}, &types.ParseError{Entity: "feeRecord", Field: "paid_fee", Err: err}
	}
	return f, nil
}

func feeRow(f types.FeeRecord) dbvalue.Row {
	return dbvalue.Row{
		"student_id": dbvalue.Text(f.StudentID),
		"total_fee":  dbvalue.Real(f.TotalFee),
		"paid_fee":   dbvalue.Real(f.PaidFee),
	}
}

func feeInsertParams(f types.FeeRecord) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(f.StudentID), dbvalue.Real(f.TotalFee), dbvalue.Real(f.PaidFee))
}

func feeUpdateParams(f types.FeeRecord) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Real(f.TotalFee), dbvalue.Real(f.PaidFee), dbvalue.Text(f.StudentID))
}

type feeDAO struct {
	a *Adapter
}

func (d *feeDAO) GetByID(studentID string) (types.FeeRecord, error) {
	if studentID == "" {
		return types.FeeRecord{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectFee, dbvalue.Params(dbvalue.Text(studentID)))
	if err != nil {
		return types.FeeRecord{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.FeeRecord{}, fmt.Errorf("fee record %s: %w", studentID, types.ErrNotFound)
	}
	return parseFee(row)
}

func (d *feeDAO) GetAll() ([]types.FeeRecord, error) {
	return d.queryFees(selectAllFees, nil)
}

func (d *feeDAO) Add(f types.FeeRecord) (types.FeeRecord, error) {
	if err := f.Validate(); err != nil {
		return types.FeeRecord{}, err
	}
	if _, err := d.a.Exec(insertFee, feeInsertParams(f)); err != nil {
		if isUniqueViolation(err) {
			return types.FeeRecord{}, fmt.Errorf("fee record %s: %w", f.StudentID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.FeeRecord{}, fmt.Errorf("fee record %s references a missing student: %w", f.StudentID, err)
		}
		return types.FeeRecord{}, err
	}
	return f, nil
}

func (d *feeDAO) Update(f types.FeeRecord) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	affected, err := d.a.Exec(updateFee, feeUpdateParams(f))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("fee record %s: %w", f.StudentID, types.ErrNotFound)
	}
	return true, nil
}

func (d *feeDAO) Remove(studentID string) (bool, error) {
	if studentID == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteFee, dbvalue.Params(dbvalue.Text(studentID)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("fee record %s: %w", studentID, types.ErrNotFound)
	}
	return true, nil
}

func (d *feeDAO) Exists(studentID string) (bool, error) {
	table, err := d.a.Query(existsFee, dbvalue.Params(dbvalue.Text(studentID)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *feeDAO) FindUnpaid() ([]types.FeeRecord, error) {
	return d.queryFees(selectFeeUnpaid, nil)
}

func (d *feeDAO) queryFees(query string, params dbvalue.ParamList) ([]types.FeeRecord, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.FeeRecord, 0, len(table))
	for _, row := range table {
		f, err := parseFee(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
