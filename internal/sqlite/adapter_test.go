package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := NewAdapter(nil)
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, a.Connect(path))
	t.Cleanup(func() { a.Disconnect() })
	return a
}

func TestAdapterConnect(t *testing.T) {
	a := NewAdapter(nil)
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, a.Connect(path))
	assert.True(t, a.IsConnected())

	// Double connect fails without disturbing the live connection.
	err := a.Connect(path)
	assert.ErrorIs(t, err, types.ErrAlreadyConnected)
	assert.True(t, a.IsConnected())

	require.NoError(t, a.Disconnect())
	assert.False(t, a.IsConnected())

	// Idempotent.
	assert.NoError(t, a.Disconnect())
}

func TestAdapterForeignKeysEnabled(t *testing.T) {
	a := newTestAdapter(t)

	table, err := a.Query("PRAGMA foreign_keys", nil)
	require.NoError(t, err)
	require.Len(t, table, 1)
	enabled, err := table[0].Integer("foreign_keys")
	require.NoError(t, err)
	assert.Equal(t, int64(1), enabled)
}

func TestAdapterNotConnected(t *testing.T) {
	a := NewAdapter(nil)

	_, err := a.Query("SELECT 1", nil)
	assert.ErrorIs(t, err, types.ErrNotConnected)
	_, err = a.Exec("SELECT 1", nil)
	assert.ErrorIs(t, err, types.ErrNotConnected)
	err = a.ExecAll([]Statement{{SQL: "SELECT 1"}})
	assert.ErrorIs(t, err, types.ErrNotConnected)
}

func TestAdapterQueryDecodesVariants(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Exec(`CREATE TABLE probe (i INTEGER, r REAL, t TEXT, n TEXT)`, nil)
	require.NoError(t, err)
	affected, err := a.Exec(`INSERT INTO probe (i, r, t, n) VALUES (?, ?, ?, ?)`,
		dbvalue.Params(dbvalue.Integer(7), dbvalue.Real(2.5), dbvalue.Text(""), dbvalue.Null()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	table, err := a.Query(`SELECT i, r, t, n FROM probe`, nil)
	require.NoError(t, err)
	require.Len(t, table, 1)

	row := table[0]
	i, err := row.Integer("i")
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)
	r, err := row.Real("r")
	require.NoError(t, err)
	assert.Equal(t, 2.5, r)

	// Empty text and NULL stay distinct through the round trip.
	s, err := row.Text("t")
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.True(t, row["n"].IsNull())
}

func TestAdapterPrepareError(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Query("SELECT FROM no_such", nil)
	require.Error(t, err)
	var serr *types.StatementError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, types.StagePrepare, serr.Stage)
}

func TestAdapterExecZeroRowsIsNotError(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Exec(`CREATE TABLE probe (id TEXT PRIMARY KEY)`, nil)
	require.NoError(t, err)

	affected, err := a.Exec(`DELETE FROM probe WHERE id = ?`, dbvalue.Params(dbvalue.Text("missing")))
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestAdapterExecAllRollsBack(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Exec(`CREATE TABLE probe (id TEXT PRIMARY KEY)`, nil)
	require.NoError(t, err)

	// Second statement violates the primary key; the first must not stick.
	err = a.ExecAll([]Statement{
		{SQL: `INSERT INTO probe (id) VALUES (?)`, Params: dbvalue.Params(dbvalue.Text("a"))},
		{SQL: `INSERT INTO probe (id) VALUES (?)`, Params: dbvalue.Params(dbvalue.Text("a"))},
	})
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	table, err := a.Query(`SELECT id FROM probe`, nil)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	a := newTestAdapter(t)

	require.NoError(t, a.EnsureSchema())
	require.NoError(t, a.EnsureSchema())

	table, err := a.Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(table))
	for _, row := range table {
		name, err := row.Text("name")
		require.NoError(t, err)
		names = append(names, name)
	}
	for _, want := range []string{
		"faculties", "users", "students", "teachers", "courses",
		"logins", "enrollments", "course_results", "fee_records", "salary_records",
	} {
		assert.Contains(t, names, want)
	}
}
