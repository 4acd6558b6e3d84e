package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Enrollment SQL templates. The composite key (student_id, course_id)
// orders both the insert parameters and the key lookups.
const (
	selectEnrollment         = `SELECT student_id, course_id FROM enrollments WHERE student_id = ? AND course_id = ?`
	selectAllEnrollments     = `SELECT student_id, course_id FROM enrollments ORDER BY student_id, course_id`
	selectEnrollmentsStudent = `SELECT student_id, course_id FROM enrollments WHERE student_id = ? ORDER BY course_id`
	selectEnrollmentsCourse  = `SELECT student_id, course_id FROM enrollments WHERE course_id = ? ORDER BY student_id`
	insertEnrollment         = `INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)`
	deleteEnrollment         = `DELETE FROM enrollments WHERE student_id = ? AND course_id = ?`
	existsEnrollment         = `SELECT 1 FROM enrollments WHERE student_id = ? AND course_id = ?`
)

func parseEnrollment(row dbvalue.Row) (types.Enrollment, error) {
	var e types.Enrollment
	var err error
	if e.StudentID, err = row.Text("student_id"); err != nil {
		return types.Enrollment{}, &types.ParseError{Entity: "enrollment", Field: "student_id", Err: err}
	}
	if e.CourseID, err = row.Text("course_id"); err != nil {
		return types.Enrollment{}, &types.ParseError{Entity: "enrollment", Field: "course_id", Err: err}
	}
	return e, nil
}

func enrollmentRow(e types.Enrollment) dbvalue.Row {
	return dbvalue.Row{
		"student_id": dbvalue.Text(e.StudentID),
		"course_id":  dbvalue.Text(e.CourseID),
	}
}

func enrollmentInsertParams(e types.Enrollment) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(e.StudentID), dbvalue.Text(e.CourseID))
}

func keyParams(k types.EnrollmentKey) dbvalue.ParamList {
	return dbvalue.Params(dbvalue.Text(k.StudentID), dbvalue.Text(k.CourseID))
}

type enrollmentDAO struct {
	a *Adapter
}

func (d *enrollmentDAO) GetByID(key types.EnrollmentKey) (types.Enrollment, error) {
	if key.StudentID == "" || key.CourseID == "" {
		return types.Enrollment{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectEnrollment, keyParams(key))
	if err != nil {
		return types.Enrollment{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.Enrollment{}, fmt.Errorf("enrollment %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return parseEnrollment(row)
}

func (d *enrollmentDAO) GetAll() ([]types.Enrollment, error) {
	return d.queryEnrollments(selectAllEnrollments, nil)
}

func (d *enrollmentDAO) Add(e types.Enrollment) (types.Enrollment, error) {
	if err := e.Validate(); err != nil {
		return types.Enrollment{}, err
	}
	if _, err := d.a.Exec(insertEnrollment, enrollmentInsertParams(e)); err != nil {
		if isUniqueViolation(err) {
			return types.Enrollment{}, fmt.Errorf("enrollment %s/%s: %w", e.StudentID, e.CourseID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.Enrollment{}, fmt.Errorf("enrollment %s/%s references a missing student or course: %w",
				e.StudentID, e.CourseID, err)
		}
		return types.Enrollment{}, err
	}
	return e, nil
}

// Update is meaningless for a pure junction row: both columns form the
// key. It reports whether the row exists so the generic contract holds.
func (d *enrollmentDAO) Update(e types.Enrollment) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	ok, err := d.Exists(e.Key())
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("enrollment %s/%s: %w", e.StudentID, e.CourseID, types.ErrNotFound)
	}
	return false, nil
}

func (d *enrollmentDAO) Remove(key types.EnrollmentKey) (bool, error) {
	if key.StudentID == "" || key.CourseID == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteEnrollment, keyParams(key))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("enrollment %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return true, nil
}

func (d *enrollmentDAO) Exists(key types.EnrollmentKey) (bool, error) {
	table, err := d.a.Query(existsEnrollment, keyParams(key))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *enrollmentDAO) FindByStudent(studentID string) ([]types.Enrollment, error) {
	return d.queryEnrollments(selectEnrollmentsStudent, dbvalue.Params(dbvalue.Text(studentID)))
}

func (d *enrollmentDAO) FindByCourse(courseID string) ([]types.Enrollment, error) {
	return d.queryEnrollments(selectEnrollmentsCourse, dbvalue.Params(dbvalue.Text(courseID)))
}

func (d *enrollmentDAO) queryEnrollments(query string, params dbvalue.ParamList) ([]types.Enrollment, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.Enrollment, 0, len(table))
	for _, row := range table {
		e, err := parseEnrollment(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
