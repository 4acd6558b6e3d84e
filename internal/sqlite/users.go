package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// userColumns is the canonical users select list. The student and teacher
// DAOs reuse it with a table alias so every identity decodes through the
// same parser.
const userColumns = `id, first_name, last_name, birth_day, birth_month, birth_year,
address, citizen_id, email, phone_number, role, status`

// User SQL templates. Insert parameter order: id, first_name, last_name,
// birth_day, birth_month, birth_year, address, citizen_id, email,
// phone_number, role, status. Update sets the same columns minus id, with
// the primary key last.
const (
	selectUser       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectAllUsers   = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	selectUserEmail  = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	selectUserStatus = `SELECT ` + userColumns + ` FROM users WHERE status = ? ORDER BY id`
	selectUserRole   = `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY id`

	insertUser = `INSERT INTO users (id, first_name, last_name, birth_day, birth_month, birth_year,
address, citizen_id, email, phone_number, role, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateUser = `UPDATE users SET first_name = ?, last_name = ?, birth_day = ?, birth_month = ?,
birth_year = ?, address = ?, citizen_id = ?, email = ?, phone_number = ?, role = ?, status = ?
WHERE id = ?`

	deleteUser = `DELETE FROM users WHERE id = ?`
	existsUser = `SELECT 1 FROM users WHERE id = ?`
)

// parseUser converts a decoded row into a User. The primary id and the
// enum ordinals are required; an unknown ordinal is rejected, never
// defaulted. Optional columns fall back to their unset value.
func parseUser(row dbvalue.Row) (types.User, error) {
	var u types.User
	var err error

	if u.ID, err = row.Text("id"); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "id", Err: err}
	}
	if u.ID == "" {
		return types.User{}, &types.ParseError{Entity: "user", Field: "id", Err: fmt.Errorf("empty")}
	}
	if u.FirstName, err = row.Text("first_name"); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "first_name", Err: err}
	}
	if u.LastName, err = row.OptText("last_name", ""); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "last_name", Err: err}
	}

	day, err := row.OptInteger("birth_day", 0)
	if err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "birth_day", Err: err}
	}
	month, err := row.OptInteger("birth_month", 0)
	if err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "birth_month", Err: err}
	}
	year, err := row.OptInteger("birth_year", 0)
	if err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "birth_year", Err: err}
	}
	u.Birthday = types.Date{Day: int(day), Month: int(month), Year: int(year)}

	if u.Address, err = row.OptText("address", ""); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "address", Err: err}
	}
	if u.CitizenID, err = row.OptText("citizen_id", ""); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "citizen_id", Err: err}
	}
	if u.Email, err = row.OptText("email", ""); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "email", Err: err}
	}
	if u.PhoneNumber, err = row.OptText("phone_number", ""); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "phone_number", Err: err}
	}

	roleOrd, err := row.Integer("role")
	if err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "role", Err: err}
	}
	if u.Role, err = types.ParseRole(roleOrd); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "role", Err: err}
	}
	statusOrd, err := row.Integer("status")
	if err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "status", Err: err}
	}
	if u.Status, err = types.ParseStatus(statusOrd); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "status", Err: err}
	}

	return u, nil
}

// userRow serializes a User to a named row. Optional empty fields become
// Null so "not set" survives a round trip.
func userRow(u types.User) dbvalue.Row {
	return dbvalue.Row{
		"id":           dbvalue.Text(u.ID),
		"first_name":   dbvalue.Text(u.FirstName),
		"last_name":    optText(u.LastName),
		"birth_day":    optDay(u.Birthday.Day),
		"birth_month":  optDay(u.Birthday.Month),
		"birth_year":   optDay(u.Birthday.Year),
		"address":      optText(u.Address),
		"citizen_id":   optText(u.CitizenID),
		"email":        optText(u.Email),
		"phone_number": optText(u.PhoneNumber),
		"role":         dbvalue.Integer(int64(u.Role)),
		"status":       dbvalue.Integer(int64(u.Status)),
	}
}

func userInsertParams(u types.User) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(u.ID),
		dbvalue.Text(u.FirstName),
		optText(u.LastName),
		optDay(u.Birthday.Day),
		optDay(u.Birthday.Month),
		optDay(u.Birthday.Year),
		optText(u.Address),
		optText(u.CitizenID),
		optText(u.Email),
		optText(u.PhoneNumber),
		dbvalue.Integer(int64(u.Role)),
		dbvalue.Integer(int64(u.Status)),
	)
}

func userUpdateParams(u types.User) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(u.FirstName),
		optText(u.LastName),
		optDay(u.Birthday.Day),
		optDay(u.Birthday.Month),
		optDay(u.Birthday.Year),
		optText(u.Address),
		optText(u.CitizenID),
		optText(u.Email),
		optText(u.PhoneNumber),
		dbvalue.Integer(int64(u.Role)),
		dbvalue.Integer(int64(u.Status)),
		dbvalue.Text(u.ID),
	)
}

type userDAO struct {
	a *Adapter
}

func (d *userDAO) GetByID(id string) (types.User, error) {
	if id == "" {
		return types.User{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectUser, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return types.User{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.User{}, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	return parseUser(row)
}

func (d *userDAO) GetAll() ([]types.User, error) {
	return d.queryUsers(selectAllUsers, nil)
}

func (d *userDAO) Add(u types.User) (types.User, error) {
	if u.ID == "" {
		u.ID = newID()
	}
	if err := u.Validate(); err != nil {
		return types.User{}, err
	}
	if _, err := d.a.Exec(insertUser, userInsertParams(u)); err != nil {
		if isUniqueViolation(err) {
			return types.User{}, fmt.Errorf("user %s: %w", u.ID, types.ErrAlreadyExists)
		}
		return types.User{}, err
	}
	return u, nil
}

func (d *userDAO) Update(u types.User) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(u.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("user %s: %w", u.ID, types.ErrNotFound)
	}
	affected, err := d.a.Exec(updateUser, userUpdateParams(u))
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("user %s: %w", u.ID, types.ErrAlreadyExists)
		}
		return false, err
	}
	return affected > 0, nil
}

func (d *userDAO) Remove(id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteUser, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	return true, nil
}

func (d *userDAO) Exists(id string) (bool, error) {
	table, err := d.a.Query(existsUser, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *userDAO) FindByEmail(email string) (types.User, error) {
	table, err := d.a.Query(selectUserEmail, dbvalue.Params(dbvalue.Text(email)))
	if err != nil {
		return types.User{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.User{}, fmt.Errorf("user with email %q: %w", email, types.ErrNotFound)
	}
	return parseUser(row)
}

func (d *userDAO) FindByStatus(status types.Status) ([]types.User, error) {
	return d.queryUsers(selectUserStatus, dbvalue.Params(dbvalue.Integer(int64(status))))
}

func (d *userDAO) FindByRole(role types.Role) ([]types.User, error) {
	return d.queryUsers(selectUserRole, dbvalue.Params(dbvalue.Integer(int64(role))))
}

// queryUsers runs a users query and decodes every row with the shared
// parser, the same discipline GetAll uses.
func (d *userDAO) queryUsers(query string, params dbvalue.ParamList) ([]types.User, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.User, 0, len(table))
	for _, row := range table {
		u, err := parseUser(row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
