package types

// Teacher is a user identity extended with teaching-specific fields.
// The extension row shares the user's ID and cannot outlive it.
type Teacher struct {
	User
	FacultyID              string // optional, cleared when the faculty is deleted
	Qualification          string
	SpecializationSubjects string
	Designation            string
	ExperienceYears        int
}

// Validate checks teacher invariants, including the base identity.
func (t Teacher) Validate() error {
	if err := t.User.Validate(); err != nil {
		return err
	}
	if t.Role != RoleTeacher {
		return &ValidationError{Field: "role", Reason: "must be teacher"}
	}
	if t.ExperienceYears < 0 {
		return &ValidationError{Field: "experienceYears", Reason: "must not be negative"}
	}
	return nil
}
