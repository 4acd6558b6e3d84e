package dbvalue

import "fmt"

// MissingColumnError reports a required column absent from a Row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dbvalue: missing column %q", e.Column)
}

// Row maps column names to values. Insertion order is irrelevant; lookup
// is by name.
type Row map[string]Value

// Has reports whether the column is present, regardless of variant.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// Text returns the Text value of a required column.
// A missing column is a MissingColumnError; a Null or non-text value is a
// TypeMismatchError.
func (r Row) Text(col string) (string, error) {
	v, ok := r[col]
	if !ok {
		return "", &MissingColumnError{Column: col}
	}
	s, err := v.AsText()
	if err != nil {
		return "", fmt.Errorf("column %q: %w", col, err)
	}
	return s, nil
}

// Integer returns the Integer value of a required column.
func (r Row) Integer(col string) (int64, error) {
	v, ok := r[col]
	if !ok {
		return 0, &MissingColumnError{Column: col}
	}
	i, err := v.AsInteger()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return i, nil
}

// Real returns the Real value of a required column. An Integer cell is
// widened to Real at this boundary: SQLite stores untyped numeric literals
// as integers when they are whole.
func (r Row) Real(col string) (float64, error) {
	v, ok := r[col]
	if !ok {
		return 0, &MissingColumnError{Column: col}
	}
	if i, err := v.AsInteger(); err == nil {
		return float64(i), nil
	}
	f, err := v.AsReal()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return f, nil
}

// OptText returns the Text value of an optional column, or fallback when
// the column is absent or Null.
func (r Row) OptText(col, fallback string) (string, error) {
	if !r.Has(col) || r[col].IsNull() {
		return fallback, nil
	}
	v := r[col]
	s, err := v.AsText()
	if err != nil {
		return "", fmt.Errorf("column %q: %w", col, err)
	}
	return s, nil
}

// OptInteger returns the Integer value of an optional column, or fallback
// when the column is absent or Null.
func (r Row) OptInteger(col string, fallback int64) (int64, error) {
	if !r.Has(col) || r[col].IsNull() {
		return fallback, nil
	}
	v := r[col]
	i, err := v.AsInteger()
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return i, nil
}

// Table is an ordered sequence of rows. The order is whatever the query
// produced and carries no other meaning.
type Table []Row

// ParamList is an ordered sequence of values. Position i (0-based) aligns
// with the (i+1)-th placeholder of the SQL text being executed. The
// ordering is a convention between a mapper and its paired SQL template;
// nothing in the type system enforces it.
type ParamList []Value

// Params builds a ParamList from its arguments, in order.
func Params(vs ...Value) ParamList {
	return ParamList(vs)
}
