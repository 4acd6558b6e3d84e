package memory

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

type feeDAO struct{ s *Store }

func (d *feeDAO) GetByID(studentID string) (types.FeeRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.FeeRecord{}, types.ErrNotConnected
	}
	if studentID == "" {
		return types.FeeRecord{}, types.ErrInvalidID
	}
	f, ok := d.s.fees[studentID]
	if !ok {
		return types.FeeRecord{}, fmt.Errorf("fee record %s: %w", studentID, types.ErrNotFound)
	}
	return f, nil
}

func (d *feeDAO) GetAll() ([]types.FeeRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.FeeRecord) bool { return true }), nil
}

func (d *feeDAO) Add(f types.FeeRecord) (types.FeeRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.FeeRecord{}, types.ErrNotConnected
	}
	if err := f.Validate(); err != nil {
		return types.FeeRecord{}, err
	}
	if _, ok := d.s.fees[f.StudentID]; ok {
		return types.FeeRecord{}, fmt.Errorf("fee record %s: %w", f.StudentID, types.ErrAlreadyExists)
	}
	if _, ok := d.s.students[f.StudentID]; !ok {
		return types.FeeRecord{}, &types.ValidationError{Field: "studentId", Reason: "references a missing student"}
	}
	d.s.fees[f.StudentID] = f
	if err := d.s.commit(); err != nil {
		return types.FeeRecord{}, err
	}
	return f, nil
}

func (d *feeDAO) Update(f types.FeeRecord) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := f.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.fees[f.StudentID]; !ok {
		return false, fmt.Errorf("fee record %s: %w", f.StudentID, types.ErrNotFound)
	}
	d.s.fees[f.StudentID] = f
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *feeDAO) Remove(studentID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if studentID == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.fees[studentID]; !ok {
		return false, fmt.Errorf("fee record %s: %w", studentID, types.ErrNotFound)
	}
	delete(d.s.fees, studentID)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *feeDAO) Exists(studentID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.fees[studentID]
	return ok, nil
}

func (d *feeDAO) FindUnpaid() ([]types.FeeRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(f types.FeeRecord) bool { return f.PaidFee < f.TotalFee }), nil
}

func (d *feeDAO) collect(keep func(types.FeeRecord) bool) []types.FeeRecord {
	out := make([]types.FeeRecord, 0, len(d.s.fees))
	for _, f := range d.s.fees {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}

type salaryDAO struct{ s *Store }

func (d *salaryDAO) GetByID(teacherID string) (types.SalaryRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.SalaryRecord{}, types.ErrNotConnected
	}
	if teacherID == "" {
		return types.SalaryRecord{}, types.ErrInvalidID
	}
	r, ok := d.s.salaries[teacherID]
	if !ok {
		return types.SalaryRecord{}, fmt.Errorf("salary record %s: %w", teacherID, types.ErrNotFound)
	}
	return r, nil
}

func (d *salaryDAO) GetAll() ([]types.SalaryRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	out := make([]types.SalaryRecord, 0, len(d.s.salaries))
	for _, r := range d.s.salaries {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeacherID < out[j].TeacherID })
	return out, nil
}

func (d *salaryDAO) Add(r types.SalaryRecord) (types.SalaryRecord, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.SalaryRecord{}, types.ErrNotConnected
	}
	if err := r.Validate(); err != nil {
		return types.SalaryRecord{}, err
	}
	if _, ok := d.s.salaries[r.TeacherID]; ok {
		return types.SalaryRecord{}, fmt.Errorf("salary record %s: %w", r.TeacherID, types.ErrAlreadyExists)
	}
	if _, ok := d.s.teachers[r.TeacherID]; !ok {
		return types.SalaryRecord{}, &types.ValidationError{Field: "teacherId", Reason: "references a missing teacher"}
	}
	d.s.salaries[r.TeacherID] = r
	if err := d.s.commit(); err != nil {
		return types.SalaryRecord{}, err
	}
	return r, nil
}

func (d *salaryDAO) Update(r types.SalaryRecord) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := r.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.salaries[r.TeacherID]; !ok {
		return false, fmt.Errorf("salary record %s: %w", r.TeacherID, types.ErrNotFound)
	}
	d.s.salaries[r.TeacherID] = r
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *salaryDAO) Remove(teacherID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if teacherID == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.salaries[teacherID]; !ok {
		return false, fmt.Errorf("salary record %s: %w", teacherID, types.ErrNotFound)
	}
	delete(d.s.salaries, teacherID)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *salaryDAO) Exists(teacherID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.salaries[teacherID]
	return ok, nil
}
