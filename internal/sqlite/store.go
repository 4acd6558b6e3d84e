package sqlite

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "registrar.db"

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store implements types.Store on a single SQLite database. It creates
// the data directory and the schema on Open and hands out one DAO per
// entity type, all sharing the store's adapter.
type Store struct {
	log     *slog.Logger
	adapter *Adapter

	faculties   *facultyDAO
	users       *userDAO
	students    *studentDAO
	teachers    *teacherDAO
	courses     *courseDAO
	logins      *loginDAO
	enrollments *enrollmentDAO
	results     *resultDAO
	fees        *feeDAO
	salaries    *salaryDAO
}

// NewStore creates a closed store. A nil logger discards diagnostics.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{log: log}
}

// Open connects to <DataDir>/registrar.db and ensures the schema exists.
func (s *Store) Open(config types.Config) error {
	if s.adapter != nil && s.adapter.IsConnected() {
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

	adapter := NewAdapter(s.log)
	if err := adapter.Connect(filepath.Join(dataDir, DatabaseFile)); err != nil {
		return err
	}
	if err := adapter.EnsureSchema(); err != nil {
		adapter.Disconnect()
		return fmt.Errorf("ensuring schema: %w", err)
	}

	s.adapter = adapter
	s.faculties = &facultyDAO{a: adapter}
	s.users = &userDAO{a: adapter}
	s.students = &studentDAO{a: adapter}
	s.teachers = &teacherDAO{a: adapter}
	s.courses = &courseDAO{a: adapter}
	s.logins = &loginDAO{a: adapter}
	s.enrollments = &enrollmentDAO{a: adapter}
	s.results = &resultDAO{a: adapter}
	s.fees = &feeDAO{a: adapter}
	s.salaries = &salaryDAO{a: adapter}
	return nil
}

// Close releases the connection. Idempotent.
func (s *Store) Close() error {
	if s.adapter == nil {
		return nil
	}
	err := s.adapter.Disconnect()
	s.adapter = nil
	return err
}

func (s *Store) Faculties() types.FacultyDAO          { return s.faculties }
func (s *Store) Users() types.UserDAO                 { return s.users }
func (s *Store) Students() types.StudentDAO           { return s.students }
func (s *Store) Teachers() types.TeacherDAO           { return s.teachers }
func (s *Store) Courses() types.CourseDAO             { return s.courses }
func (s *Store) Logins() types.LoginDAO               { return s.logins }
func (s *Store) Enrollments() types.EnrollmentDAO     { return s.enrollments }
func (s *Store) CourseResults() types.CourseResultDAO { return s.results }
func (s *Store) FeeRecords() types.FeeRecordDAO       { return s.fees }
func (s *Store) SalaryRecords() types.SalaryRecordDAO { return s.salaries }
