package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Course SQL templates. Insert parameter order: id, name, credits,
// faculty_id. Update sets the same columns minus id, primary key last.
const (
	courseColumns = "id, name, credits, faculty_id"

	selectCourse         = `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	selectAllCourses     = `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	selectCoursesFaculty = `SELECT ` + courseColumns + ` FROM courses WHERE faculty_id = ? ORDER BY id`

	insertCourse = `INSERT INTO courses (id, name, credits, faculty_id) VALUES (?, ?, ?, ?)`
	updateCourse = `UPDATE courses SET name = ?, credits = ?, faculty_id = ? WHERE id = ?`
	deleteCourse = `DELETE FROM courses WHERE id = ?`
	existsCourse = `SELECT 1 FROM courses WHERE id = ?`
)

// parseCourse converts a decoded row into a Course.
func parseCourse(row dbvalue.Row) (types.Course, error) {
	var c types.Course
	var err error
	if c.ID, err = row.Text("id"); err != nil {
		return types.Course{}, &types.ParseError{Entity: "course", Field: "id", Err: err}
	}
	if c.Name, err = row.Text("name"); err != nil {
		return types.Course{}, &types.ParseError{Entity: "course", Field: "name", Err: err}
	}
	credits, err := row.Integer("credits")
	if err != nil {
		return types.Course{}, &types.ParseError{Entity: "course", Field: "credits", Err: err}
	}
	c.Credits = int(credits)
	if c.FacultyID, err = row.OptText("faculty_id", ""); err != nil {
		return types.Course{}, &types.ParseError{Entity: "course", Field: "faculty_id", Err: err}
	}
	return c, nil
}

// courseRow serializes a Course to a named row.
func courseRow(c types.Course) dbvalue.Row {
	return dbvalue.Row{
		"id":         dbvalue.Text(c.ID),
		"name":       dbvalue.Text(c.Name),
		"credits":    dbvalue.Integer(int64(c.Credits)),
		"faculty_id": optText(c.FacultyID),
	}
}

func courseInsertParams(c types.Course) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(c.ID),
		dbvalue.Text(c.Name),
		dbvalue.Integer(int64(c.Credits)),
		optText(c.FacultyID),
	)
}

func courseUpdateParams(c types.Course) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(c.Name),
		dbvalue.Integer(int64(c.Credits)),
		optText(c.FacultyID),
		dbvalue.Text(c.ID),
	)
}

type courseDAO struct {
	a *Adapter
}

func (d *courseDAO) GetByID(id string) (types.Course, error) {
	if id == "" {
		return types.Course{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectCourse, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return types.Course{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Course{}, fmt.Errorf("course %s: %w", id, types.ErrNotFound)
	}
	return parseCourse(row)
}

func (d *courseDAO) GetAll() ([]types.Course, error) {
	return d.queryCourses(selectAllCourses, nil)
}

func (d *courseDAO) Add(c types.Course) (types.Course, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	if err := c.Validate(); err != nil {
		return types.Course{}, err
	}
	if _, err := d.a.Exec(insertCourse, courseInsertParams(c)); err != nil {
		if isUniqueViolation(err) {
			return types.Course{}, fmt.Errorf("course %s: %w", c.ID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.Course{}, fmt.Errorf("course %s references missing faculty %q: %w", c.ID, c.FacultyID, err)
		}
		return types.Course{}, err
	}
	return c, nil
}

func (d *courseDAO) Update(c types.Course) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(c.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("course %s: %w", c.ID, types.ErrNotFound)
	}
	affected, err := d.a.Exec(updateCourse, courseUpdateParams(c))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (d *courseDAO) Remove(id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteCourse, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("course %s: %w", id, types.ErrNotFound)
	}
	return true, nil
}

func (d *courseDAO) Exists(id string) (bool, error) {
	table, err := d.a.Query(existsCourse, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *courseDAO) FindByFaculty(facultyID string) ([]types.Course, error) {
	return d.queryCourses(selectCoursesFaculty, dbvalue.Params(dbvalue.Text(facultyID)))
}

func (d *courseDAO) queryCourses(query string, params dbvalue.ParamList) ([]types.Course, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.Course, 0, len(table))
	for _, row := range table {
		c, err := parseCourse(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
