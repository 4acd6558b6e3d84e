package types

// Faculty is an independent reference entity. Name is unique.
type Faculty struct {
	ID   string
	Name string
}

// Validate checks faculty invariants.
func (f Faculty) Validate() error {
	if f.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if f.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
