package csvstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/registrar/internal/memory"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Table file names inside the data directory.
const (
	FacultiesFile   = "faculties.csv"
	UsersFile       = "users.csv"
	StudentsFile    = "students.csv"
	TeachersFile    = "teachers.csv"
	CoursesFile     = "courses.csv"
	LoginsFile      = "logins.csv"
	EnrollmentsFile = "enrollments.csv"
	ResultsFile     = "course_results.csv"
	FeesFile        = "fee_records.csv"
	SalariesFile    = "salary_records.csv"
)

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store is the CSV-backed registrar backend. All reads and integrity
// checks run against an inner in-memory store; every successful mutation
// rewrites the affected tables on disk atomically, one CSV file per
// table.
type Store struct {
	log     *slog.Logger
	inner   *memory.Store
	dataDir string
}

// NewStore creates a closed store. A nil logger discards diagnostics.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{log: log}
}

// Open loads all table files from config.DataDir into the inner store and
// installs the persistence hook. Missing files are empty tables, so a
// fresh directory just works.
func (s *Store) Open(config types.Config) error {
	if s.inner != nil {
		return types.ErrAlreadyConnected
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dump, err := loadTables(dataDir)
	if err != nil {
		return &types.ConnectionError{Path: dataDir, Err: err}
	}

	inner := memory.NewStore(s.log)
	inner.SetAfterWrite(func(d memory.TableDump) error {
		return persistTables(dataDir, d)
	})
	if err := inner.Open(config); err != nil {
		return err
	}
	if err := inner.Restore(dump); err != nil {
		inner.Close()
		return err
	}

	s.inner = inner
	s.dataDir = dataDir
	return nil
}

// Close releases the inner store. Idempotent. State is already on disk,
// so nothing is flushed here.
func (s *Store) Close() error {
	if s.inner == nil {
		return nil
	}
	err := s.inner.Close()
	s.inner = nil
	return err
}

func (s *Store) Faculties() types.FacultyDAO          { return s.inner.Faculties() }
func (s *Store) Users() types.UserDAO                 { return s.inner.Users() }
func (s *Store) Students() types.StudentDAO           { return s.inner.Students() }
func (s *Store) Teachers() types.TeacherDAO           { return s.inner.Teachers() }
func (s *Store) Courses() types.CourseDAO             { return s.inner.Courses() }
func (s *Store) Logins() types.LoginDAO               { return s.inner.Logins() }
func (s *Store) Enrollments() types.EnrollmentDAO     { return s.inner.Enrollments() }
func (s *Store) CourseResults() types.CourseResultDAO { return s.inner.CourseResults() }
func (s *Store) FeeRecords() types.FeeRecordDAO       { return s.inner.FeeRecords() }
func (s *Store) SalaryRecords() types.SalaryRecordDAO { return s.inner.SalaryRecords() }

func junctionKey(studentID, courseID string) string {
	return studentID + "\x00" + courseID
}

// loadTables reads every table file into a dump.
func loadTables(dataDir string) (memory.TableDump, error) {
	var d memory.TableDump

	load := func(file string, header []string, restore func([][]string) error) error {
		records, err := readTable(filepath.Join(dataDir, file), header)
		if err != nil {
			return err
		}
		if err := restore(records); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		return nil
	}

	steps := []struct {
		file    string
		header  []string
		restore func([][]string) error
	}{
		{FacultiesFile, facultyHeader, func(recs [][]string) (err error) {
			d.Faculties, err = decodeRows(recs, decodeFaculty)
			return
		}},
		{UsersFile, userHeader, func(recs [][]string) (err error) {
			d.Users, err = decodeRows(recs, decodeUser)
			return
		}},
		{StudentsFile, studentHeader, func(recs [][]string) (err error) {
			d.Students, err = decodeRows(recs, decodeStudent)
			return
		}},
		{TeachersFile, teacherHeader, func(recs [][]string) (err error) {
			d.Teachers, err = decodeRows(recs, decodeTeacher)
			return
		}},
		{CoursesFile, courseHeader, func(recs [][]string) (err error) {
			d.Courses, err = decodeRows(recs, decodeCourse)
			return
		}},
		{LoginsFile, loginHeader, func(recs [][]string) (err error) {
			d.Logins, err = decodeRows(recs, decodeLogin)
			return
		}},
		{EnrollmentsFile, enrollmentHeader, func(recs [][]string) (err error) {
			d.Enrollments, err = decodeRows(recs, decodeEnrollment)
			return
		}},
		{ResultsFile, resultHeader, func(recs [][]string) (err error) {
			d.Results, err = decodeRows(recs, decodeResult)
			return
		}},
		{FeesFile, feeHeader, func(recs [][]string) (err error) {
			d.Fees, err = decodeRows(recs, decodeFee)
			return
		}},
		{SalariesFile, salaryHeader, func(recs [][]string) (err error) {
			d.Salaries, err = decodeRows(recs, decodeSalary)
			return
		}},
	}
	for _, step := range steps {
		if err := load(step.file, step.header, step.restore); err != nil {
			return memory.TableDump{}, err
		}
	}
	return d, nil
}

// persistTables writes every table file from a dump. Each file is
// replaced atomically; the dump is a consistent snapshot, so the set of
// files converges to a consistent state even if a write in the middle
// fails.
func persistTables(dataDir string, d memory.TableDump) error {
	steps := []struct {
		file    string
		header  []string
		records [][]string
	}{
		{FacultiesFile, facultyHeader, encodeRows(d.Faculties,
			func(f types.Faculty) string { return f.ID }, encodeFaculty)},
		{UsersFile, userHeader, encodeRows(d.Users,
			func(u types.User) string { return u.ID }, encodeUser)},
		{StudentsFile, studentHeader, encodeRows(d.Students,
			func(e memory.StudentExt) string { return e.UserID }, encodeStudent)},
		{TeachersFile, teacherHeader, encodeRows(d.Teachers,
			func(e memory.TeacherExt) string { return e.UserID }, encodeTeacher)},
		{CoursesFile, courseHeader, encodeRows(d.Courses,
			func(c types.Course) string { return c.ID }, encodeCourse)},
		{LoginsFile, loginHeader, encodeRows(d.Logins,
			func(l types.Login) string { return l.UserID }, encodeLogin)},
		{EnrollmentsFile, enrollmentHeader, encodeRows(d.Enrollments,
			func(e types.Enrollment) string { return junctionKey(e.StudentID, e.CourseID) }, encodeEnrollment)},
		{ResultsFile, resultHeader, encodeRows(d.Results,
			func(r types.CourseResult) string { return junctionKey(r.StudentID, r.CourseID) }, encodeResult)},
		{FeesFile, feeHeader, encodeRows(d.Fees,
			func(f types.FeeRecord) string { return f.StudentID }, encodeFee)},
		{SalariesFile, salaryHeader, encodeRows(d.Salaries,
			func(s types.SalaryRecord) string { return s.TeacherID }, encodeSalary)},
	}
	for _, step := range steps {
		if err := writeTable(filepath.Join(dataDir, step.file), step.header, step.records); err != nil {
			return err
		}
	}
	return nil
}
