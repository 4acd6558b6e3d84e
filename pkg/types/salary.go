package types

// SalaryRecord is the salary row for a teacher, 1:1 with the teacher and
// removed together with it.
type SalaryRecord struct {
	TeacherID       string
	BasicMonthlyPay float64
}

// Validate checks salary invariants.
func (s SalaryRecord) Validate() error {
	if s.TeacherID == "" {
		return &ValidationError{Field: "teacherId", Reason: "must not be empty"}
	}
	if s.BasicMonthlyPay < 0 {
		return &ValidationError{Field: "basicMonthlyPay", Reason: "must not be negative"}
	}
	return nil
}
