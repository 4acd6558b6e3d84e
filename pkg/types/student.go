package types

// Student is a user identity extended with student-specific fields.
// The extension row shares the user's ID and cannot outlive it.
// FacultyID is optional and becomes empty when the faculty is deleted.
type Student struct {
	User
	FacultyID string
}

// Validate checks student invariants, including the base identity.
func (s Student) Validate() error {
	if err := s.User.Validate(); err != nil {
		return err
	}
	if s.Role != RoleStudent {
		return &ValidationError{Field: "role", Reason: "must be student"}
	}
	return nil
}
