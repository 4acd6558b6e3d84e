package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Login SQL templates. Insert parameter order: user_id, password_hash,
// salt. The login row requires an existing users row; the schema rejects
// credentials for an identity that does not exist.
const (
	selectLogin    = `SELECT user_id, password_hash, salt FROM logins WHERE user_id = ?`
	selectAllLogin = `SELECT user_id, password_hash, salt FROM logins ORDER BY user_id`
	insertLogin    = `INSERT INTO logins (user_id, password_hash, salt) VALUES (?, ?, ?)`
	updateLogin    = `UPDATE logins SET password_hash = ?, salt = ? WHERE user_id = ?`
	deleteLogin    = `DELETE FROM logins WHERE user_id = ?`
	existsLogin    = `SELECT 1 FROM logins WHERE user_id = ?`
)

func parseLogin(row dbvalue.Row) (types.Login, error) {
	var l types.Login
	var err error
	if l.UserID, err = row.Text("user_id"); err != nil {
		return types.Login{}, &types.ParseError{Entity: "login", Field: "user_id", Err: err}
	}
	if l.PasswordHash, err = row.Text("password_hash"); err != nil {
		return types.Login{}, &types.ParseError{Entity: "login", Field: "password_hash", Err: err}
	}
	if l.Salt, err = row.Text("salt"); err != nil {
		return types.Login{}, &types.ParseError{Entity: "login", Field: "salt", Err: err}
	}
	return l, nil
}

func loginRow(l types.Login) dbvalue.Row {
	return dbvalue.Row{
		"user_id":       dbvalue.Text(l.UserID),
		"password_hash": dbvalue.Text(l.PasswordHash),
		"salt":          dbvalue.Text(l.Salt),
	}
}

func loginInsertParams(l types.Login) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(l.UserID), dbvalue.Text(l.PasswordHash), dbvalue.Text(l.Salt))
}

func loginUpdateParams(l types.Login) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(l.PasswordHash), dbvalue.Text(l.Salt), dbvalue.Text(l.UserID))
}

type loginDAO struct {
	a *Adapter
}

func (d *loginDAO) GetByID(userID string) (types.Login, error) {
	if userID == "" {
		return types.Login{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectLogin, dbvalue.Params(dbvalue.Text(userID)))
	if err != nil {
		return types.Login{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Login{}, fmt.Errorf("login %s: %w", userID, types.ErrNotFound)
	}
	return parseLogin(row)
}

func (d *loginDAO) GetAll() ([]types.Login, error) {
	table, err := d.a.Query(selectAllLogin, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.Login, 0, len(table))
	for _, row := range table {
		l, err := parseLogin(row)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (d *loginDAO) Add(l types.Login) (types.Login, error) {
	if err := l.Validate(); err != nil {
		return types.Login{}, err
	}
	if _, err := d.a.Exec(insertLogin, loginInsertParams(l)); err != nil {
		if isUniqueViolation(err) {
			return types.Login{}, fmt.Errorf("login %s: %w", l.UserID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.Login{}, fmt.Errorf("login %s references a missing user: %w", l.UserID, err)
		}
		return types.Login{}, err
	}
	return l, nil
}

func (d *loginDAO) Update(l types.Login) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}
	affected, err := d.a.Exec(updateLogin, loginUpdateParams(l))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("login %s: %w", l.UserID, types.ErrNotFound)
	}
	return true, nil
}

func (d *loginDAO) Remove(userID string) (bool, error) {
	if userID == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteLogin, dbvalue.Params(dbvalue.Text(userID)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("login %s: %w", userID, types.ErrNotFound)
	}
	return true, nil
}

func (d *loginDAO) Exists(userID string) (bool, error) {
	table, err := d.a.Query(existsLogin, dbvalue.Params(dbvalue.Text(userID)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}
