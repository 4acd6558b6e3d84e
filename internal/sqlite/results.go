package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/pkg/dbvalue"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// CourseResult SQL templates. Insert parameter order: student_id,
// course_id, marks, grade. Update sets marks and grade with the composite
// key last.
const (
	selectResult         = `SELECT student_id, course_id, marks, grade FROM course_results WHERE student_id = ? AND course_id = ?`
	selectAllResults     = `SELECT student_id, course_id, marks, grade FROM course_results ORDER BY student_id, course_id`
	selectResultsStudent = `SELECT student_id, course_id, marks, grade FROM course_results WHERE student_id = ? ORDER BY course_id`
	selectResultsCourse  = `SELECT student_id, course_id, marks, grade FROM course_results WHERE course_id = ? ORDER BY student_id`
	insertResult         = `INSERT INTO course_results (student_id, course_id, marks, grade) VALUES (?, ?, ?, ?)`
	updateResult         = `UPDATE course_results SET marks = ?, grade = ? WHERE student_id = ? AND course_id = ?`
	deleteResult         = `DELETE FROM course_results WHERE student_id = ? AND course_id = ?`
	existsResult         = `SELECT 1 FROM course_results WHERE student_id = ? AND course_id = ?`
)

func parseResult(row dbvalue.Row) (types.CourseResult, error) {
	var r types.CourseResult
	var err error
	if r.StudentID, err = row.Text("student_id"); err != nil {
		return types.CourseResult{}, &types.ParseError{Entity: "courseResult", Field: "student_id", Err: err}
	}
	if r.CourseID, err = row.Text("course_id"); err != nil {
		return types.CourseResult{}, &types.ParseError{Entity: "courseResult", Field: "course_id", Err: err}
	}
	marks, err := row.Integer("marks")
	if err != nil {
		return types.CourseResult{}, &types.ParseError{Entity: "courseResult", Field: "marks", Err: err}
	}
	r.Marks = int(marks)
	if r.Grade, err = row.Text("grade"); err != nil {
		return types.CourseResult{}, &types.ParseError{Entity: "courseResult", Field: "grade", Err: err}
	}
	return r, nil
}

func resultRow(r types.CourseResult) dbvalue.Row {
	return dbvalue.Row{
		"student_id": dbvalue.Text(r.StudentID),
		"course_id":  dbvalue.Text(r.CourseID),
		"marks":      dbvalue.Integer(int64(r.Marks)),
		"grade":      dbvalue.Text(r.Grade),
	}
}

func resultInsertParams(r types.CourseResult) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Text(r.StudentID),
		dbvalue.Text(r.CourseID),
		dbvalue.Integer(int64(r.Marks)),
		dbvalue.Text(r.Grade),
	)
}

func resultUpdateParams(r types.CourseResult) dbvalue.ParamList {
	return dbvalue.Params(
		dbvalue.Integer(int64(r.Marks)),
		dbvalue.Text(r.Grade),
		dbvalue.Text(r.StudentID),
		dbvalue.Text(r.CourseID),
	)
}

type resultDAO struct {
	a *Adapter
}

func (d *resultDAO) GetByID(key types.EnrollmentKey) (types.CourseResult, error) {
	if key.StudentID == "" || key.CourseID == "" {
		return types.CourseResult{}, types.ErrInvalidID
	}
	table, err := d.a.Query(selectResult, keyParams(key))
	if err != nil {
		return types.CourseResult{}, err
	}
	row, ok := single(table)
	if !ok {
		return types.CourseResult{}, fmt.Errorf("result %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return parseResult(row)
}

func (d *resultDAO) GetAll() ([]types.CourseResult, error) {
	return d.queryResults(selectAllResults, nil)
}

// Add validates the marks range before anything reaches the backend and
// derives the letter grade from the marks.
func (d *resultDAO) Add(r types.CourseResult) (types.CourseResult, error) {
	if err := r.Validate(); err != nil {
		return types.CourseResult{}, err
	}
	r.Grade = types.GradeFor(r.Marks)
	if _, err := d.a.Exec(insertResult, resultInsertParams(r)); err != nil {
		if isUniqueViolation(err) {
			return types.CourseResult{}, fmt.Errorf("result %s/%s: %w", r.StudentID, r.CourseID, types.ErrAlreadyExists)
		}
		if isForeignKeyViolation(err) {
			return types.CourseResult{}, fmt.Errorf("result %s/%s references a missing student or course: %w",
				r.StudentID, r.CourseID, err)
		}
		return types.CourseResult{}, err
	}
	return r, nil
}

func (d *resultDAO) Update(r types.CourseResult) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	r.Grade = types.GradeFor(r.Marks)
	affected, err := d.a.Exec(updateResult, resultUpdateParams(r))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("result %s/%s: %w", r.StudentID, r.CourseID, types.ErrNotFound)
	}
	return true, nil
}

func (d *resultDAO) Remove(key types.EnrollmentKey) (bool, error) {
	if key.StudentID == "" || key.CourseID == "" {
		return false, types.ErrInvalidID
	}
	affected, err := d.a.Exec(deleteResult, keyParams(key))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("result %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return true, nil
}

func (d *resultDAO) Exists(key types.EnrollmentKey) (bool, error) {
	table, err := d.a.Query(existsResult, keyParams(key))
	if err != nil {
		return false, err
	}
	return len(table) > 0, nil
}

func (d *resultDAO) FindByStudent(studentID string) ([]types.CourseResult, error) {
	return d.queryResults(selectResultsStudent, dbvalue.Params(dbvalue.Text(studentID)))
}

func (d *resultDAO) FindByCourse(courseID string) ([]types.CourseResult, error) {
	return d.queryResults(selectResultsCourse, dbvalue.Params(dbvalue.Text(courseID)))
}

func (d *resultDAO) queryResults(query string, params dbvalue.ParamList) ([]types.CourseResult, error) {
	table, err := d.a.Query(query, params)
	if err != nil {
		return nil, err
	}
	out := make([]types.CourseResult, 0, len(table))
	for _, row := range table {
		r, err := parseResult(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
