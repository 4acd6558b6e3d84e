package sqlite

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
)

// newID generates a UUID v7 for entity IDs, falling back to v4 when v7
// generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// optText serializes an optional string field. Empty means "not set" and
// becomes Null rather than empty text, so the two are distinguishable in
// storage and unique indexes ignore unset values.
func optText(s string) dbvalue.Value {
	if s == "" {
		return dbvalue.Null()
	}
	return dbvalue.Text(s)
}

// optDay serializes one component of an optional date; zero becomes Null.
func optDay(n int) dbvalue.Value {
	if n == 0 {
		return dbvalue.Null()
	}
	return dbvalue.Integer(int64(n))
}

// single returns the only row of a result set, or ok=false when the set
// is empty.
func single(table dbvalue.Table) (dbvalue.Row, bool) {
	if len(table) == 0 {
		return nil, false
	}
	return table[0], true
}
