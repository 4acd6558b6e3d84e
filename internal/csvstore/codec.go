package csvstore

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mesh-intelligence/registrar/internal/memory"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Table file names and column layouts. An empty cell stands for an unset
// optional field, matching the NULL convention of the relational backend.
var (
	facultyHeader = []string{"id", "name"}
	userHeader    = []string{
		"id", "first_name", "last_name",
		"birth_day", "birth_month", "birth_year",
		"address", "citizen_id", "email", "phone_number",
		"role", "status",
	}
	studentHeader = []string{"user_id", "faculty_id"}
	teacherHeader = []string{
		"user_id", "faculty_id", "qualification",
		"specialization_subjects", "designation", "experience_years",
	}
	courseHeader     = []string{"id", "name", "credits", "faculty_id"}
	loginHeader      = []string{"user_id", "password_hash", "salt"}
	enrollmentHeader = []string{"student_id", "course_id"}
	resultHeader     = []string{"student_id", "course_id", "marks", "grade"}
	feeHeader        = []string{"student_id", "total_fee", "paid_fee"}
	salaryHeader     = []string{"teacher_id", "basic_monthly_pay"}
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// optInt renders zero as an empty cell.
func optInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func parseIntCell(entity, field, cell string) (int, error) {
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, &types.ParseError{Entity: entity, Field: field, Err: err}
	}
	return v, nil
}

// parseOptInt treats an empty cell as zero.
func parseOptInt(entity, field, cell string) (int, error) {
	if cell == "" {
		return 0, nil
	}
	return parseIntCell(entity, field, cell)
}

func parseFloatCell(entity, field, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, &types.ParseError{Entity: entity, Field: field, Err: err}
	}
	return v, nil
}

func encodeFaculty(f types.Faculty) []string {
	return []string{f.ID, f.Name}
}

func decodeFaculty(rec []string) (types.Faculty, error) {
	return types.Faculty{ID: rec[0], Name: rec[1]}, nil
}

func encodeUser(u types.User) []string {
	return []string{
		u.ID, u.FirstName, u.LastName,
		optInt(u.Birthday.Day), optInt(u.Birthday.Month), optInt(u.Birthday.Year),
		u.Address, u.CitizenID, u.Email, u.PhoneNumber,
		strconv.Itoa(int(u.Role)), strconv.Itoa(int(u.Status)),
	}
}

func decodeUser(rec []string) (types.User, error) {
	var u types.User
	var err error
	u.ID = rec[0]
	u.FirstName = rec[1]
	u.LastName = rec[2]
	if u.Birthday.Day, err = parseOptInt("user", "birth_day", rec[3]); err != nil {
		return types.User{}, err
	}
	if u.Birthday.Month, err = parseOptInt("user", "birth_month", rec[4]); err != nil {
		return types.User{}, err
	}
	if u.Birthday.Year, err = parseOptInt("user", "birth_year", rec[5]); err != nil {
		return types.User{}, err
	}
	u.Address = rec[6]
	u.CitizenID = rec[7]
	u.Email = rec[8]
	u.PhoneNumber = rec[9]
	role, err := parseIntCell("user", "role", rec[10])
	if err != nil {
		return types.User{}, err
	}
	if u.Role, err = types.ParseRole(int64(role)); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "role", Err: err}
	}
	status, err := parseIntCell("user", "status", rec[11])
	if err != nil {
		return types.User{}, err
	}
	if u.Status, err = types.ParseStatus(int64(status)); err != nil {
		return types.User{}, &types.ParseError{Entity: "user", Field: "status", Err: err}
	}
	return u, nil
}

func encodeStudent(e memory.StudentExt) []string {
	return []string{e.UserID, e.FacultyID}
}

func decodeStudent(rec []string) (memory.StudentExt, error) {
	return memory.StudentExt{UserID: rec[0], FacultyID: rec[1]}, nil
}

func encodeTeacher(e memory.TeacherExt) []string {
	return []string{
		e.UserID, e.FacultyID, e.Qualification,
		e.SpecializationSubjects, e.Designation, strconv.Itoa(e.ExperienceYears),
	}
}

func decodeTeacher(rec []string) (memory.TeacherExt, error) {
	years, err := parseIntCell("teacher", "experience_years", rec[5])
	if err != nil {
		return memory.TeacherExt{}, err
	}
	return memory.TeacherExt{
		UserID:                 rec[0],
		FacultyID:              rec[1],
		Qualification:          rec[2],
		SpecializationSubjects: rec[3],
		Designation:            rec[4],
		ExperienceYears:        years,
	}, nil
}

func encodeCourse(c types.Course) []string {
	return []string{c.ID, c.Name, strconv.Itoa(c.Credits), c.FacultyID}
}

func decodeCourse(rec []string) (types.Course, error) {
	credits, err := parseIntCell("course", "credits", rec[2])
	if err != nil {
		return types.Course{}, err
	}
	return types.Course{ID: rec[0], Name: rec[1], Credits: credits, FacultyID: rec[3]}, nil
}

func encodeLogin(l types.Login) []string {
	return []string{l.UserID, l.PasswordHash, l.Salt}
}

func decodeLogin(rec []string) (types.Login, error) {
	return types.Login{UserID: rec[0], PasswordHash: rec[1], Salt: rec[2]}, nil
}

func encodeEnrollment(e types.Enrollment) []string {
	return []string{e.StudentID, e.CourseID}
}

func decodeEnrollment(rec []string) (types.Enrollment, error) {
	return types.Enrollment{StudentID: rec[0], CourseID: rec[1]}, nil
}

func encodeResult(r types.CourseResult) []string {
	return []string{r.StudentID, r.CourseID, strconv.Itoa(r.Marks), r.Grade}
}

func decodeResult(rec []string) (types.CourseResult, error) {
	marks, err := parseIntCell("courseResult", "marks", rec[2])
	if err != nil {
		return types.CourseResult{}, err
	}
	return types.CourseResult{StudentID: rec[0], CourseID: rec[1], Marks: marks, Grade: rec[3]}, nil
}

func encodeFee(f types.FeeRecord) []string {
	return []string{f.StudentID, formatFloat(f.TotalFee), formatFloat(f.PaidFee)}
}

func decodeFee(rec []string) (types.FeeRecord, error) {
	total, err := parseFloatCell("feeRecord", "total_fee", rec[1])
	if err != nil {
		return types.FeeRecord{}, err
	}
	paid, err := parseFloatCell("feeRecord", "paid_fee", rec[2])
	if err != nil {
		return types.FeeRecord{}, err
	}
	return types.FeeRecord{StudentID: rec[0], TotalFee: total, PaidFee: paid}, nil
}

func encodeSalary(s types.SalaryRecord) []string {
	return []string{s.TeacherID, formatFloat(s.BasicMonthlyPay)}
}

func decodeSalary(rec []string) (types.SalaryRecord, error) {
	pay, err := parseFloatCell("salaryRecord", "basic_monthly_pay", rec[1])
	if err != nil {
		return types.SalaryRecord{}, err
	}
	return types.SalaryRecord{TeacherID: rec[0], BasicMonthlyPay: pay}, nil
}

// encodeRows sorts entities by key and encodes each, so persisted files
// are deterministic and diff cleanly.
func encodeRows[E any](entities []E, key func(E) string, encode func(E) []string) [][]string {
	sorted := make([]E, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })
	out := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, encode(e))
	}
	return out
}

func decodeRows[E any](records [][]string, decode func([]string) (E, error)) ([]E, error) {
	out := make([]E, 0, len(records))
	for i, rec := range records {
		e, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}
