package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// A student spans two tables: the base identity in users and the
// extension row in students, keyed by the same id. Add and Update run
// both statements in one transaction; Remove deletes the users row and
// the schema cascades take the rest.
const (
	studentColumns = `u.id, u.first_name, u.last_name, u.birth_day, u.birth_month, u.birth_year,
u.address, u.citizen_id, u.email, u.phone_number, u.role, u.status, s.faculty_id`

	selectStudent = `SELECT ` + studentColumns + `
FROM users u JOIN students s ON s.user_id = u.id WHERE u.id = ?`

	selectAllStudents = `SELECT ` + studentColumns + `
FROM users u JOIN students s ON s.user_id = u.id ORDER BY u.id`

	selectStudentsFaculty = `SELECT ` + studentColumns + `
FROM users u JOIN students s ON s.user_id = u.id WHERE s.faculty_id = ? ORDER BY u.id`

	selectStudentEmail = `SELECT ` + studentColumns + `
FROM users u JOIN students s ON s.user_id = u.id WHERE u.email = ?`

	// Extension insert parameter order: user_id, faculty_id.
	insertStudentRow = `INSERT INTO students (user_id, faculty_id) VALUES (?, ?)`
	updateStudentRow = `UPDATE students SET faculty_id = ? WHERE user_id = ?`

	// Only delete the users row when a student extension exists, so a
	// student DAO cannot remove a teacher or admin identity.
	deleteStudent = `DELETE FROM users WHERE id = ? AND id IN (SELECT user_id FROM students)`
	existsStudent = `SELECT 1 FROM students WHERE user_id = ?`
)

// parseStudent converts a joined row into a Student.
func parseStudent(row dbvalue.Row) (types.Student, error) {
	u, err := parseUser(row)
	if err != nil {
		return types.Student{}, err
	}
	facultyID, err := row.OptText("faculty_id", "")
	if err != nil {
		return types.Student{}, &types.ParseError{Entity: "student", Field: "faculty_id", Err: err}
	}
	return types.Student{User: u, FacultyID: facultyID}, nil
}

// studentRow serializes a Student to a named row.
func studentRow(s types.Student) dbvalue.Row {
	row := userRow(s.User)
	row["faculty_id"] = optText(s.FacultyID)
	return row
}

func studentInsertParams(s types.Student) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(s.ID), optText(s.FacultyID))
}

func studentUpdateParams(s types.Student) dbvalue.ParamList {
	return dbvalue.Params(optText(s.FacultyID), dbvalue.Text(s.ID))
}

type studentDAO struct {
	a *Adapter
}

func (d *studentDAO) GetByID(id string) (types.Student, error) {
	if id == "" {
		return types.Student{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectStudent, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return types.Student{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Student{}, fmt.Errorf("student %s: %w", id, types.ErrNotFound)
	}
	return parseStudent(row)
}

func (d *studentDAO) GetAll() ([]types.Student, error) {
	return d.queryStudents(selectAllStudents, nil)
}

// Add creates the base identity and the extension row in one transaction.
// A failure on either statement leaves no partial rows behind.
func (d *studentDAO) Add(s types.Student) (types.Student, error) {
	if s.ID == "" {
		s.ID = newID()
	}
	s.Role = types.RoleStudent
	if err := s.Validate(); err != nil {
		return types.Student{}, err
	}

	err := d.a.ExecAll([]Statement{
		{SQL: insertUser, Params: userInsertParams(s.User)},
		{SQL: insertStudentRow, Params: studentInsertParams(s)},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, fmt.Errorf("student %s: %w", s.ID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.Student{}, fmt.Errorf("student %s references missing faculty %q: %w", s.ID, s.FacultyID, err)
		}
		return types.Student{}, err
	}
	return s, nil
}

func (d *studentDAO) Update(s types.Student) (bool, error) {
	s.Role = types.RoleStudent
	if err := s.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(s.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("student %s: %w", s.ID, types.ErrNotFound)
	}

	err = d.a.ExecAll([]Statement{
		{SQL: updateUser, Params: userUpdateParams(s.User)},
		{SQL: updateStudentRow, Params: studentUpdateParams(s)},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("student %s: %w", s.ID, types.ErrAlreadyExists)
		}
		return false, err
	}
	return true, nil
}

// Remove deletes the base identity; the extension row, login,
// enrollments, results, and fee record go with it via cascade.
func (d *studentDAO) Remove(id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteStudent, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("student %s: %w", id, types.ErrNotFound)
	}
	return true, nil
}

func (d *studentDAO) Exists(id string) (bool, error) {
	table, err := d.a.Query(existsStudent, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *studentDAO) FindByFaculty(facultyID string) ([]types.Student, error) {
	return d.queryStudents(selectStudentsFaculty, dbvalue.Params(dbvalue.Text(facultyID)))
}

func (d *studentDAO) FindByEmail(email string) (types.Student, error) {
	table, err := d.a.Query(selectStudentEmail, dbvalue.Params(dbvalue.Text(email)))
	if err != nil {
		return types.Student{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Student{}, fmt.Errorf("student with email %q: %w", email, types.ErrNotFound)
	}
	return parseStudent(row)
}

func (d *studentDAO) queryStudents(query string, params dbvalue.ParamList) ([]types.Student, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.Student, 0, len(table))
	for _, row := range table {
		s, err := parseStudent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
