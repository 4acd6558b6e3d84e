// Package sqlite implements the relational storage backend for the
// registrar: a connection adapter executing parameterized SQL over a
// single SQLite database, the schema, and the per-entity mappers and
// DAOs built on top of it.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	sqlite3 "modernc.org/sqlite"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// SQLite result codes the DAO layer translates. Primary-key and unique
// violations both become types.ErrAlreadyExists.
const (
	codeConstraint           = 19
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
	codeConstraintForeignKey = 787
)

// Statement pairs a SQL template with the ordered parameters to bind to
// its placeholders.
type Statement struct {
	SQL    string
	Params dbvalue.ParamList
}

// Adapter owns one physical SQLite connection and executes parameterized
// statements against it. It does not pool connections and is not safe
// for concurrent use; callers serialize access externally. Every call is
// synchronous and the prepared statement is released on every exit path.
type Adapter struct {
	log  *slog.Logger
	db   *sql.DB
	path string
}

// NewAdapter creates a disconnected adapter. A nil logger discards
// diagnostics.
func NewAdapter(log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{log: log}
}

// Connect opens the database at path and enables foreign-key enforcement.
// If enforcement cannot be enabled the connection is closed and Connect
// fails: the adapter never stays in a connected-but-unsafe state.
func (a *Adapter) Connect(path string) error {
	if a.db != nil {
		return types.ErrAlreadyConnected
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &types.ConnectionError{Path: path, Err: err}
	}
	// database/sql opens lazily; a large pool would silently hand out
	// extra connections with per-connection pragma state.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return &types.ConnectionError{Path: path, Err: fmt.Errorf("enabling foreign keys: %w", err)}
	}
	var enabled int64
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil || enabled != 1 {
		db.Close()
		if err == nil {
			err = errors.New("pragma had no effect")
		}
		return &types.ConnectionError{Path: path, Err: fmt.Errorf("verifying foreign keys: %w", err)}
	}

	a.db = db
	a.path = path
	a.log.Debug("connected", "path", path)
	return nil
}

// Disconnect closes the connection. Idempotent; safe when not connected.
func (a *Adapter) Disconnect() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	a.path = ""
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// IsConnected reports whether the adapter holds an open connection.
func (a *Adapter) IsConnected() bool {
	return a.db != nil
}

// Query prepares the statement, binds params positionally, and decodes
// every column of every row into a dbvalue cell using the driver's native
// type tag.
func (a *Adapter) Query(query string, params dbvalue.ParamList) (dbvalue.Table, error) {
	if a.db == nil {
		return nil, types.ErrNotConnected
	}

	stmt, err := a.db.Prepare(query)
	if err != nil {
		return nil, stmtError(types.StagePrepare, query, err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(bindParams(params)...)
	if err != nil {
		return nil, stmtError(types.StageExecute, query, err)
	}
	defer rows.Close()

	return decodeRows(rows, query)
}

// Exec prepares and runs a statement that returns no rows and reports the
// number of rows affected. Zero rows affected is a successful result, not
// an error; constraint violations surface as a StatementError carrying
// the native code.
func (a *Adapter) Exec(query string, params dbvalue.ParamList) (int64, error) {
	if a.db == nil {
		return 0, types.ErrNotConnected
	}

	stmt, err := a.db.Prepare(query)
	if err != nil {
		return 0, stmtError(types.StagePrepare, query, err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(bindParams(params)...)
	if err != nil {
		return 0, stmtError(types.StageExecute, query, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, stmtError(types.StageExecute, query, err)
	}
	return affected, nil
}

// ExecAll runs the statements inside a single transaction, rolling back
// on the first failure. Used for multi-table entity writes that must be
// indivisible from the caller's perspective.
func (a *Adapter) ExecAll(stmts []Statement) error {
	if a.db == nil {
		return types.ErrNotConnected
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, st := range stmts {
		if _, err := tx.Exec(st.SQL, bindParams(st.Params)...); err != nil {
			return stmtError(types.StageExecute, st.SQL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// bindParams converts a ParamList to driver arguments in order. The
// closed variant set makes the conversion total: Null binds SQL NULL and
// the scalar variants bind their native type.
func bindParams(params dbvalue.ParamList) []any {
	args := make([]any, len(params))
	for i, p := range params {
		switch p.Kind() {
		case dbvalue.KindNull:
			args[i] = nil
		case dbvalue.KindInteger:
			v, _ := p.AsInteger()
			args[i] = v
		case dbvalue.KindReal:
			v, _ := p.AsReal()
			args[i] = v
		default:
			v, _ := p.AsText()
			args[i] = v
		}
	}
	return args
}

// decodeRows drains the row set, converting each cell by the driver's
// native type. Blobs are out of scope and decode as opaque text.
func decodeRows(rows *sql.Rows, query string) (dbvalue.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, stmtError(types.StageExecute, query, err)
	}

	table := dbvalue.Table{}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, stmtError(types.StageExecute, query, err)
		}

		row := make(dbvalue.Row, len(cols))
		for i, col := range cols {
			row[col] = decodeCell(cells[i])
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, stmtError(types.StageExecute, query, err)
	}
	return table, nil
}

// decodeCell maps one driver value to its dbvalue variant.
func decodeCell(v any) dbvalue.Value {
	switch c := v.(type) {
	case nil:
		return dbvalue.Null()
	case int64:
		return dbvalue.Integer(c)
	case float64:
		return dbvalue.Real(c)
	case string:
		return dbvalue.Text(c)
	case []byte:
		return dbvalue.Text(string(c))
	default:
		return dbvalue.Text(fmt.Sprint(c))
	}
}

// stmtError wraps a driver error with its lifecycle stage and the
// backend-native result code when available.
func stmtError(stage, query string, err error) error {
	return &types.StatementError{
		Stage: stage,
		Code:  nativeCode(err),
		Query: query,
		Err:   err,
	}
}

// nativeCode extracts the SQLite result code from a driver error, or 0.
func nativeCode(err error) int {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

// isUniqueViolation reports whether the error is a primary-key or unique
// constraint failure.
func isUniqueViolation(err error) bool {
	switch nativeCode(err) {
	case codeConstraintPrimaryKey, codeConstraintUnique:
		return true
	case codeConstraint:
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return false
}

// isForeignKeyViolation reports whether the error is a foreign-key
// constraint failure.
func isForeignKeyViolation(err error) bool {
	if nativeCode(err) == codeConstraintForeignKey {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY")
}
