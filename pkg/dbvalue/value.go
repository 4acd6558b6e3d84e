// Package dbvalue defines the dynamic value model shared by the storage
// adapter and the entity mappers: a closed scalar type used both for query
// parameters and for decoded result cells, plus the Row, Table, and
// ParamList aggregates built from it.
package dbvalue

import "fmt"

// Kind identifies the active variant of a Value.
type Kind int

// The four storable scalar kinds. Booleans and enums persist as Integer;
// blobs are out of scope and decode as opaque Text.
const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeMismatchError reports an extractor called on the wrong variant.
// There is no implicit widening: asking a Real value for its Integer is an
// error, not a truncation.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("dbvalue: type mismatch: want %s, got %s", e.Want, e.Got)
}

// Value is a scalar with exactly one active variant: Null, Integer, Real,
// or Text. The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	r    float64
	s    string
}

// Null returns the Null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Integer returns an Integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Real returns a Real value.
func Real(r float64) Value {
	return Value{kind: KindReal, r: r}
}

// Text returns a Text value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInteger extracts the Integer variant.
// Returns a TypeMismatchError for any other variant.
func (v Value) AsInteger() (int64, error) {
	if v.kind != KindInteger {
		return 0, &TypeMismatchError{Want: KindInteger, Got: v.kind}
	}
	return v.i, nil
}

// AsReal extracts the Real variant.
// Returns a TypeMismatchError for any other variant.
func (v Value) AsReal() (float64, error) {
	if v.kind != KindReal {
		return 0, &TypeMismatchError{Want: KindReal, Got: v.kind}
	}
	return v.r, nil
}

// AsText extracts the Text variant.
// Returns a TypeMismatchError for any other variant.
func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", &TypeMismatchError{Want: KindText, Got: v.kind}
	}
	return v.s, nil
}

// Equal reports variant-and-value equality. Null equals only Null.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInteger:
		return v.i == o.i
	case KindReal:
		return v.r == o.r
	default:
		return v.s == o.s
	}
}

// String renders the value for diagnostics. Text is quoted so an empty
// string is distinguishable from Null.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindReal:
		return fmt.Sprintf("%g", v.r)
	default:
		return fmt.Sprintf("%q", v.s)
	}
}
