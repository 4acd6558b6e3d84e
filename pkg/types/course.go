package types

import "fmt"

// Credit bounds enforced both here and by the schema CHECK constraint.
const (
	MinCredits = 1
	MaxCredits = 10
)

// Course is an independent reference entity, optionally attached to a
// faculty. FacultyID becomes empty when the faculty is deleted.
type Course struct {
	ID        string
	Name      string
	Credits   int
	FacultyID string
}

// Validate checks course invariants.
func (c Course) Validate() error {
	if c.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.Credits < MinCredits || c.Credits > MaxCredits {
		return &ValidationError{
			Field:  "credits",
			Reason: fmt.Sprintf("must be between %d and %d", MinCredits, MaxCredits),
		}
	}
	return nil
}
