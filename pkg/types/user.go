package types

import "fmt"

// Role identifies the kind of user an identity row represents.
// Roles persist as their integer ordinal; an unrecognized ordinal read
// back from storage is rejected, never defaulted.
type Role int

const (
	RoleAdmin Role = iota
	RoleTeacher
	RoleStudent
)

// ParseRole converts a stored ordinal back to a Role.
func ParseRole(ordinal int64) (Role, error) {
	r := Role(ordinal)
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, nil
	}
	return 0, fmt.Errorf("unknown role ordinal %d", ordinal)
}

// String returns the role name for display.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	case RoleStudent:
		return "student"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Status is the account lifecycle state of a user.
type Status int

const (
	StatusActive Status = iota
	StatusPendingApproval
	StatusDisabled
)

// ParseStatus converts a stored ordinal back to a Status.
func ParseStatus(ordinal int64) (Status, error) {
	s := Status(ordinal)
	switch s {
	case StatusActive, StatusPendingApproval, StatusDisabled:
		return s, nil
	}
	return 0, fmt.Errorf("unknown status ordinal %d", ordinal)
}

// String returns the status name for display.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPendingApproval:
		return "pending approval"
	case StatusDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Date is a calendar date without a timezone. The zero Date means unset.
type Date struct {
	Day   int
	Month int
	Year  int
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders the date as DD/MM/YYYY, or empty when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// User is the base identity shared by students, teachers, and admin users.
// ID is immutable after creation. CitizenID and Email are optional but
// unique when set.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Birthday    Date // zero means unset
	Address     string
	CitizenID   string
	Email       string
	PhoneNumber string
	Role        Role
	Status      Status
}

// FullName returns "First Last" for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Validate checks the identity invariants common to every user kind.
func (u User) Validate() error {
	if u.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if u.FirstName == "" {
		return &ValidationError{Field: "firstName", Reason: "must not be empty"}
	}
	if _, err := ParseRole(int64(u.Role)); err != nil {
		return &ValidationError{Field: "role", Reason: err.Error()}
	}
	if _, err := ParseStatus(int64(u.Status)); err != nil {
		return &ValidationError{Field: "status", Reason: err.Error()}
	}
	if !u.Birthday.IsZero() {
		if u.Birthday.Day < 1 || u.Birthday.Day > 31 ||
			u.Birthday.Month < 1 || u.Birthday.Month > 12 ||
			u.Birthday.Year < 1900 {
			return &ValidationError{Field: "birthday", Reason: "out of range"}
		}
	}
	return nil
}
