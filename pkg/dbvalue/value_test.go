package dbvalue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueZeroIsNull(t *testing.T) {
	var v Value
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.IsNull())
	assert.True(t, v.Equal(Null()))
}

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"integer", Integer(42), KindInteger},
		{"real", Real(3.5), KindReal},
		{"text", Text("hello"), KindText},
		{"empty text is not null", Text(""), KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.kind == KindNull, tt.v.IsNull())
		})
	}
}

func TestValueExtractors(t *testing.T) {
	i, err := Integer(7).AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)

	r, err := Real(2.25).AsReal()
	require.NoError(t, err)
	assert.Equal(t, 2.25, r)

	s, err := Text("x").AsText()
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestValueExtractorMismatch(t *testing.T) {
	tests := []struct {
		name    string
		extract func() error
		want    Kind
		got     Kind
	}{
		{"integer from real", func() error { _, err := Real(1).AsInteger(); return err }, KindInteger, KindReal},
		{"integer from null", func() error { _, err := Null().AsInteger(); return err }, KindInteger, KindNull},
		{"real from integer", func() error { _, err := Integer(1).AsReal(); return err }, KindReal, KindInteger},
		{"text from null", func() error { _, err := Null().AsText(); return err }, KindText, KindNull},
		{"text from integer", func() error { _, err := Integer(1).AsText(); return err }, KindText, KindInteger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.extract()
			require.Error(t, err)
			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.want, mismatch.Want)
			assert.Equal(t, tt.got, mismatch.Got)
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Integer(3).Equal(Integer(3)))
	assert.True(t, Text("").Equal(Text("")))

	// No cross-variant equality: Integer(0) is not Null, Real(3) is not
	// Integer(3), Text("") is not Null.
	assert.False(t, Integer(0).Equal(Null()))
	assert.False(t, Real(3).Equal(Integer(3)))
	assert.False(t, Text("").Equal(Null()))
	assert.False(t, Integer(3).Equal(Integer(4)))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "42", Integer(42).String())
	assert.Equal(t, `""`, Text("").String())
	assert.Equal(t, `"abc"`, Text("abc").String())
}

func TestRowRequiredAccessors(t *testing.T) {
	row := Row{
		"id":    Text("u1"),
		"count": Integer(3),
		"score": Real(91.5),
	}

	id, err := row.Text("id")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	count, err := row.Integer("count")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	score, err := row.Real("score")
	require.NoError(t, err)
	assert.Equal(t, 91.5, score)
}

func TestRowHas(t *testing.T) {
	row := Row{
		"id":    Text("u1"),
		"email": Null(),
	}

	assert.True(t, row.Has("id"))
	// A Null column is present; presence and nullness are distinct.
	assert.True(t, row.Has("email"))
	assert.False(t, row.Has("name"))
}

func TestRowMissingColumn(t *testing.T) {
	row := Row{"id": Text("u1")}

	_, err := row.Text("name")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Column)

	_, err = row.Integer("name")
	assert.ErrorAs(t, err, &missing)
	_, err = row.Real("name")
	assert.ErrorAs(t, err, &missing)
}

func TestRowNullInRequiredColumn(t *testing.T) {
	row := Row{"id": Null()}
	_, err := row.Text("id")
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindNull, mismatch.Got)
}

func TestRowRealWidensInteger(t *testing.T) {
	// SQLite hands back whole-number REAL columns as int64.
	row := Row{"fee": Integer(4200)}
	fee, err := row.Real("fee")
	require.NoError(t, err)
	assert.Equal(t, 4200.0, fee)
}

func TestRowOptionalAccessors(t *testing.T) {
	row := Row{
		"email": Null(),
		"phone": Text("555-1234"),
		"day":   Integer(14),
	}

	email, err := row.OptText("email", "")
	require.NoError(t, err)
	assert.Equal(t, "", email)

	phone, err := row.OptText("phone", "")
	require.NoError(t, err)
	assert.Equal(t, "555-1234", phone)

	// Absent column falls back too.
	addr, err := row.OptText("address", "unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown", addr)

	day, err := row.OptInteger("day", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(14), day)

	month, err := row.OptInteger("month", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), month)
}

func TestRowOptionalWrongKind(t *testing.T) {
	row := Row{"email": Integer(9)}
	_, err := row.OptText("email", "")
	require.Error(t, err)
	var mismatch *TypeMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestParamsPreservesOrder(t *testing.T) {
	p := Params(Text("a"), Null(), Integer(1))
	require.Len(t, p, 3)
	assert.True(t, p[0].Equal(Text("a")))
	assert.True(t, p[1].IsNull())
	assert.True(t, p[2].Equal(Integer(1)))
}
