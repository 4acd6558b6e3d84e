package types

// FeeRecord is the fee ledger for a student, 1:1 with the student and
// removed together with it.
type FeeRecord struct {
	StudentID string
	TotalFee  float64
	PaidFee   float64
}

// Outstanding returns the unpaid balance.
func (f FeeRecord) Outstanding() float64 {
	return f.TotalFee - f.PaidFee
}

// Validate checks fee invariants.
func (f FeeRecord) Validate() error {
	if f.StudentID == "" {
		return &ValidationError{Field: "studentId", Reason: "must not be empty"}
	}
	if f.TotalFee < 0 {
		return &ValidationError{Field: "totalFee", Reason: "must not be negative"}
	}
	if f.PaidFee < 0 {
		return &ValidationError{Field: "paidFee", Reason: "must not be negative"}
	}
	if f.PaidFee > f.TotalFee {
		return &ValidationError{Field: "paidFee", Reason: "must not exceed totalFee"}
	}
	return nil
}
