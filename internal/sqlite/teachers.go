package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Teachers follow the same two-table discipline as students, with the
// extension row carrying the teaching fields.
const (
	teacherColumns = `u.id, u.first_name, u.last_name, u.birth_day, u.birth_month, u.birth_year,
u.address, u.citizen_id, u.email, u.phone_number, u.role, u.status,
t.faculty_id, t.qualification, t.specialization_subjects, t.designation, t.experience_years`

	selectTeacher = `SELECT ` + teacherColumns + `
FROM users u JOIN teachers t ON t.user_id = u.id WHERE u.id = ?`

	selectAllTeachers = `SELECT ` + teacherColumns + `
FROM users u JOIN teachers t ON t.user_id = u.id ORDER BY u.id`

	selectTeachersFaculty = `SELECT ` + teacherColumns + `
FROM users u JOIN teachers t ON t.user_id = u.id WHERE t.faculty_id = ? ORDER BY u.id`

	selectTeachersDesignation = `SELECT ` + teacherColumns + `
FROM users u JOIN teachers t ON t.user_id = u.id
WHERE t.designation LIKE '%' || ? || '%' ORDER BY u.id`

	// Extension insert parameter order: user_id, faculty_id,
	// qualification, specialization_subjects, designation,
	// experience_years.
	insertTeacherRow = `INSERT INTO teachers (user_id, faculty_id, qualification,
specialization_subjects, designation, experience_years) VALUES (?, ?, ?, ?, ?, ?)`

	updateTeacherRow = `UPDATE teachers SET faculty_id = ?, qualification = ?,
specialization_subjects = ?, designation = ?, experience_years = ? WHERE user_id = ?`

	deleteTeacher = `DELETE FROM users WHERE id = ? AND id IN (SELECT user_id FROM teachers)`
	existsTeacher = `SELECT 1 FROM teachers WHERE user_id = ?`
)

// parseTeacher converts a joined row into a Teacher.
func parseTeacher(row dbvalue.Row) (types.Teacher, error) {
	u, err := parseUser(row)
	if err != nil {
		return types.Teacher{}, err
	}
	t := types.Teacher{User: u}
	if t.FacultyID, err = row.OptText("faculty_id", ""); err != nil {
		return types.Teacher{}, &types.ParseError{Entity: "teacher", Field: "faculty_id", Err: err}
	}
	if t.Qualification, err = row.OptText("qualification", ""); err != nil {
		return types.Teacher{}, &types.ParseError{Entity: "teacher", Field: "qualification", Err: err}
	}
	if t.SpecializationSubjects, err = row.OptText("specialization_subjects", ""); err != nil {
		return types.Teacher{}, &types.ParseError{Entity: "teacher", Field: "specialization_subjects", Err: err}
	}
	if t.Designation, err = row.OptText("designation", ""); err != nil {
		return types.Teacher{}, &types.ParseError{Entity: "teacher", Field: "designation", Err: err}
	}
	years, err := row.Integer("experience_years")
	if err != nil {
		return types.Teacher{}, &types.ParseError{Entity: "teacher", Field: "experience_years", Err: err}
	}
	t.ExperienceYears = int(years)
	return t, nil
}

// teacherRow serializes a Teacher to a named row.
func teacherRow(t types.Teacher) dbvalue.Row {
	row := userRow(t.User)
	row["faculty_id"] = optText(t.FacultyID)
	row["qualification"] = optText(t.Qualification)
	row["specialization_subjects"] = optText(t.SpecializationSubjects)
	row["designation"] = optText(t.Designation)
	row["experience_years"] = dbvalue.Integer(int64(t.ExperienceYears))
	return row
}

func teacherInsertParams(t types.Teacher) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(t.ID),
		optText(t.FacultyID),
		optText(t.Qualification),
		optText(t.SpecializationSubjects),
		optText(t.Designation),
		dbvalue.Integer(int64(t.ExperienceYears)),
	)
}

func teacherUpdateParams(t types.Teacher) dbvalue.ParamList {
	return dbvalue.Params(
		optText(t.FacultyID),
		optText(t.Qualification),
		optText(t.SpecializationSubjects),
		optText(t.Designation),
		dbvalue.Integer(int64(t.ExperienceYears)),
		dbvalue.Text(t.ID),
	)
}

type teacherDAO struct {
	a *Adapter
}

func (d *teacherDAO) GetByID(id string) (types.Teacher, error) {
	if id == "" {
		return types.Teacher{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectTeacher, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return types.Teacher{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Teacher{}, fmt.Errorf("teacher %s: %w", id, types.ErrNotFound)
	}
	return parseTeacher(row)
}

func (d *teacherDAO) GetAll() ([]types.Teacher, error) {
	return d.queryTeachers(selectAllTeachers, nil)
}

func (d *teacherDAO) Add(t types.Teacher) (types.Teacher, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	t.Role = types.RoleTeacher
	if err := t.Validate(); err != nil {
		return types.Teacher{}, err
	}

	err := d.a.ExecAll([]Statement{
		{SQL: insertUser, Params: userInsertParams(t.User)},
		{SQL: insertTeacherRow, Params: teacherInsertParams(t)},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return types.Teacher{}, fmt.Errorf("teacher %s: %w", t.ID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.Teacher{}, fmt.Errorf("teacher %s references missing faculty %q: %w", t.ID, t.FacultyID, err)
		}
		return types.Teacher{}, err
	}
	return t, nil
}

func (d *teacherDAO) Update(t types.Teacher) (bool, error) {
	t.Role = types.RoleTeacher
	if err := t.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(t.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("teacher %s: %w", t.ID, types.ErrNotFound)
	}

	err = d.a.ExecAll([]Statement{
		{SQL: updateUser, Params: userUpdateParams(t.User)},
		{SQL: updateTeacherRow, Params: teacherUpdateParams(t)},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("teacher %s: %w", t.ID, types.ErrAlreadyExists)
		}
		return false, err
	}
	return true, nil
}

func (d *teacherDAO) Remove(id string) (bool, error) {
	if id == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteTeacher, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("teacher %s: %w", id, types.ErrNotFound)
	}
	return true, nil
}

func (d *teacherDAO) Exists(id string) (bool, error) {
	table, err := d.a.Query(existsTeacher, dbvalue.Params(dbvalue.Text(id)))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *teacherDAO) FindByFaculty(facultyID string) ([]types.Teacher, error) {
	return d.queryTeachers(selectTeachersFaculty, dbvalue.Params(dbvalue.Text(facultyID)))
}

func (d *teacherDAO) FindByDesignation(substring string) ([]types.Teacher, error) {
	return d.queryTeachers(selectTeachersDesignation, dbvalue.Params(dbvalue.Text(substring)))
}

func (d *teacherDAO) queryTeachers(query string, params dbvalue.ParamList) ([]types.Teacher, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.Teacher, 0, len(table))
	for _, row := range table {
		t, err := parseTeacher(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
