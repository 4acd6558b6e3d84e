package types

// Login is the credential row for a user identity, 1:1 with its user and
// removed together with it. The hash and salt are write-only from the
// entity layer's point of view; they never round-trip into User.
type Login struct {
	UserID       string
	PasswordHash string
	Salt         string
}

// Validate checks credential invariants.
func (l Login) Validate() error {
	if l.UserID == "" {
		return &ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	if l.PasswordHash == "" {
		return &ValidationError{Field: "passwordHash", Reason: "must not be empty"}
	}
	if l.Salt == "" {
		return &ValidationError{Field: "salt", Reason: "must not be empty"}
	}
	return nil
}
