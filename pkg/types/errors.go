package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrNotConnected     = errors.New("store is not connected")
	ErrAlreadyConnected = errors.New("store is already connected")
)

// DAO operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidID     = errors.New("invalid entity ID")
)

// ConnectionError reports a failure to open the backend or to enable
// foreign-key enforcement on it. A connection that cannot enforce
// referential integrity is never handed to callers.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Statement lifecycle stages for StatementError. There is no bind stage:
// the closed value variant set makes parameter binding total, so a
// statement fails either at prepare or at execute.
const (
	StagePrepare = "prepare"
	StageExecute = "execute"
)

// StatementError reports a statement-lifecycle failure, carrying the
// backend-native result code when the driver exposes one (0 otherwise).
type StatementError struct {
	Stage string // prepare, bind, or execute
	Code  int    // backend-native result code, 0 if unknown
	Query string
	Err   error
}

func (e *StatementError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d): %v", e.Stage, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// ParseError reports a decoded row that cannot be converted to its target
// entity: a missing required column, an out-of-range enum ordinal, or a
// cell of the wrong kind.
type ParseError struct {
	Entity string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a value that fails a declared invariant before
// it reaches the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CompensationError reports a failed compensating action after a partial
// composite create: the credentials step failed AND the identity rollback
// failed, leaving an orphan identity that cannot authenticate. Callers
// must treat this as a critical inconsistency, not a routine failure.
type CompensationError struct {
	ID            string
	CauseErr      error // the failure that triggered compensation
	CompensateErr error // the failure of the compensation itself
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("orphan identity %s: create failed (%v) and rollback failed (%v)",
		e.ID, e.CauseErr, e.CompensateErr)
}

func (e *CompensationError) Unwrap() error { return e.CompensateErr }
