package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Faculty SQL templates. Insert parameter order: id, name. Update
// parameter order: name, with the primary key last.
const (
	selectFaculty     = `SELECT id, name FROM faculties WHERE id = ?`
	selectAllFaculty  = `SELECT id, name FROM faculties ORDER BY id`
	selectFacultyName = `SELECT id, name FROM faculties WHERE name = ?`
	insertFaculty     = `INSERT INTO faculties (id, name) VALUES (?, ?)`
	updateFaculty     = `UPDATE faculties SET name = ? WHERE id = ?`
	deleteFaculty     = `DELETE FROM faculties WHERE id = ?`
	existsFaculty     = `SELECT 1 FROM faculties WHERE id = ?`
)

// parseFaculty converts a decoded row into a Faculty.
func parseFaculty(row dbvalue.Row) (types.Faculty, error) {
	var f types.Faculty
	var err error
	if f.ID, err = row.Text("id"); err != nil {
		return types.Faculty{}, &types.ParseError{Entity: "faculty", Field: "id", Err: err}
	}
	if f.Name, err = row.Text("name"); err != nil {
		return types.Faculty{}, &types.ParseError{Entity: "faculty", Field: "name", Err: err}
	}
	return f, nil
}

// facultyRow serializes a Faculty to a named row.
func facultyRow(f types.Faculty) dbvalue.Row {
	return dbvalue.Row{
		"id":   dbvalue.Text(f.ID),
		"name": dbvalue.Text(f.Name),
	}
}

func facultyInsertParams(f types.Faculty) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(f.ID), dbvalue.Text(f.Name))
}

func facultyUpdateParams(f types.Faculty) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(f.Name), dbvalue.Text(f.ID))
}

type facultyDAO struct {
	a *Adapter
}

func (d *facultyDAO) GetByID(id string) (types.Faculty, error) {
	if id == "" {
		return types.Faculty{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectFaculty, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return types.Faculty{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Faculty{}, fmt.Errorf("faculty %s: %w", id, types.ErrNotFound)
	}
	return parseFaculty(row)
}

func (d *facultyDAO) GetAll() ([]types.Faculty, error) {
	table, err := d.a.Query(selectAllFaculty, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.Faculty, 0, len(table))
	for _, row := range table {
		f, err := parseFaculty(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (d *facultyDAO) Add(f types.Faculty) (types.Faculty, error) {
	if f.ID == "" {
		f.ID = newID()
	}
	if err := f.Validate(); err != nil {
		return types.Faculty{}, err
	}
	if _, err := d.a.Exec(insertFaculty, facultyInsertParams(f)); err != nil {
		if isUniqueViolation(err) {
			return types.Faculty{}, fmt.Errorf("faculty %s: %w", f.ID, types.ErrAlreadyExists)
		}
		return types.Faculty{}, err
	}
	return f, nil
}

func (d *facultyDAO) Update(f types.Faculty) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(f.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("faculty %s: %w", f.ID, types.ErrNotFound)
	}
	affected, err := d.a.Exec(updateFaculty, facultyUpdateParams(f))
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("faculty name %q: %w", f.Name, types.ErrAlreadyExists)
		}
		return false, err
	}
	return affected > 0, nil
}

func (d *facultyDAO) Remove(id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteFaculty, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("faculty %s: %w", id, types.ErrNotFound)
	}
	return true, nil
}

func (d *facultyDAO) Exists(id string) (bool, error) {
	table, err := d.a.Query(existsFaculty, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *facultyDAO) FindByName(name string) (types.Faculty, error) {
	table, err := d.a.Query(selectFacultyName, dbvalue.Params(dbvalue.Text(name)))
	if err != nil {
		return types.Faculty{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Faculty{}, fmt.Errorf("faculty named %q: %w", name, types.ErrNotFound)
	}
	return parseFaculty(row)
}
