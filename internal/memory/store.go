// Package memory implements the registrar storage contracts on plain
// in-process maps. It mirrors the relational layout (base identity rows
// plus extension rows) so cascade and set-null semantics match the SQLite
// backend, and enforces uniqueness and referential integrity procedurally.
package memory

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// newID generates a UUID v7 for entity IDs, falling back to v4 when v7
// generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// StudentExt is the raw student extension row.
type StudentExt struct {
	UserID    string
	FacultyID string
}

// TeacherExt is the raw teacher extension row.
type TeacherExt struct {
	UserID                 string
	FacultyID              string
	Qualification          string
	SpecializationSubjects string
	Designation            string
	ExperienceYears        int
}

// TableDump is a full copy of every table, used by file-backed stores to
// persist and restore state.
type TableDump struct {
	Faculties   []types.Faculty
	Users       []types.User
	Students    []StudentExt
	Teachers    []TeacherExt
	Courses     []types.Course
	Logins      []types.Login
	Enrollments []types.Enrollment
	Results     []types.CourseResult
	Fees        []types.FeeRecord
	Salaries    []types.SalaryRecord
}

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store is the in-memory mock backend. A single mutex serializes all
// operations; entities are value types so handed-out copies never alias
// internal state.
type Store struct {
	log  *slog.Logger
	mu   sync.Mutex
	open bool

	faculties   map[string]types.Faculty
	users       map[string]types.User
	students    map[string]StudentExt
	teachers    map[string]TeacherExt
	courses     map[string]types.Course
	logins      map[string]types.Login
	enrollments map[types.EnrollmentKey]types.Enrollment
	results     map[types.EnrollmentKey]types.CourseResult
	fees        map[string]types.FeeRecord
	salaries    map[string]types.SalaryRecord

	// afterWrite, when set, runs under the store lock after every
	// successful mutation, receiving a snapshot of all tables.
	// File-backed stores hook persistence here.
	afterWrite func(TableDump) error

	// committed is the last snapshot afterWrite accepted. When the hook
	// fails, the tables roll back to it so memory never diverges from
	// what the hook persisted. Unused when afterWrite is nil.
	committed TableDump
}

// NewStore creates a closed store. A nil logger discards diagnostics.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{log: log}
}

// SetAfterWrite installs the post-mutation hook. Must be called before
// Open.
func (s *Store) SetAfterWrite(hook func(TableDump) error) {
	s.afterWrite = hook
}

// Open initializes the tables. The memory backend ignores DataDir.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyConnected
	}
	if err := config.Validate(); err != nil {
		return err
	}

	s.faculties = make(map[string]types.Faculty)
	s.users = make(map[string]types.User)
	s.students = make(map[string]StudentExt)
	s.teachers = make(map[string]TeacherExt)
	s.courses = make(map[string]types.Course)
	s.logins = make(map[string]types.Login)
	s.enrollments = make(map[types.EnrollmentKey]types.Enrollment)
	s.results = make(map[types.EnrollmentKey]types.CourseResult)
	s.fees = make(map[string]types.FeeRecord)
	s.salaries = make(map[string]types.SalaryRecord)
	s.open = true
	return nil
}

// Close drops all tables. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *Store) Faculties() types.FacultyDAO          { return &facultyDAO{s} }
func (s *Store) Users() types.UserDAO                 { return &userDAO{s} }
func (s *Store) Students() types.StudentDAO           { return &studentDAO{s} }
func (s *Store) Teachers() types.TeacherDAO           { return &teacherDAO{s} }
func (s *Store) Courses() types.CourseDAO             { return &courseDAO{s} }
func (s *Store) Logins() types.LoginDAO               { return &loginDAO{s} }
func (s *Store) Enrollments() types.EnrollmentDAO     { return &enrollmentDAO{s} }
func (s *Store) CourseResults() types.CourseResultDAO { return &resultDAO{s} }
func (s *Store) FeeRecords() types.FeeRecordDAO       { return &feeDAO{s} }
func (s *Store) SalaryRecords() types.SalaryRecordDAO { return &salaryDAO{s} }

// Dump copies every table. The caller owns the result.
func (s *Store) Dump() TableDump {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dump()
}

// dump copies every table. The caller holds the lock.
func (s *Store) dump() TableDump {
	var d TableDump
	for _, v := range s.faculties {
		d.Faculties = append(d.Faculties, v)
	}
	for _, v := range s.users {
		d.Users = append(d.Users, v)
	}
	for _, v := range s.students {
		d.Students = append(d.Students, v)
	}
	for _, v := range s.teachers {
		d.Teachers = append(d.Teachers, v)
	}
	for _, v := range s.courses {
		d.Courses = append(d.Courses, v)
	}
	for _, v := range s.logins {
		d.Logins = append(d.Logins, v)
	}
	for _, v := range s.enrollments {
		d.Enrollments = append(d.Enrollments, v)
	}
	for _, v := range s.results {
		d.Results = append(d.Results, v)
	}
	for _, v := range s.fees {
		d.Fees = append(d.Fees, v)
	}
	for _, v := range s.salaries {
		d.Salaries = append(d.Salaries, v)
	}
	return d
}

// Restore replaces every table with the dump's contents. Used by
// file-backed stores after reading persisted state; rows are taken as-is
// without re-validation.
func (s *Store) Restore(d TableDump) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrNotConnected
	}
	s.restore(d)
	if s.afterWrite != nil {
		s.committed = s.dump()
	}
	return nil
}

// restore replaces every table with the dump's contents. The caller
// holds the lock.
func (s *Store) restore(d TableDump) {
	s.faculties = make(map[string]types.Faculty, len(d.Faculties))
	for _, v := range d.Faculties {
		s.faculties[v.ID] = v
	}
	s.users = make(map[string]types.User, len(d.Users))
	for _, v := range d.Users {
		s.users[v.ID] = v
	}
	s.students = make(map[string]StudentExt, len(d.Students))
	for _, v := range d.Students {
		s.students[v.UserID] = v
	}
	s.teachers = make(map[string]TeacherExt, len(d.Teachers))
	for _, v := range d.Teachers {
		s.teachers[v.UserID] = v
	}
	s.courses = make(map[string]types.Course, len(d.Courses))
	for _, v := range d.Courses {
		s.courses[v.ID] = v
	}
	s.logins = make(map[string]types.Login, len(d.Logins))
	for _, v := range d.Logins {
		s.logins[v.UserID] = v
	}
	s.enrollments = make(map[types.EnrollmentKey]types.Enrollment, len(d.Enrollments))
	for _, v := range d.Enrollments {
		s.enrollments[v.Key()] = v
	}
	s.results = make(map[types.EnrollmentKey]types.CourseResult, len(d.Results))
	for _, v := range d.Results {
		s.results[v.Key()] = v
	}
	s.fees = make(map[string]types.FeeRecord, len(d.Fees))
	for _, v := range d.Fees {
		s.fees[v.StudentID] = v
	}
	s.salaries = make(map[string]types.SalaryRecord, len(d.Salaries))
	for _, v := range d.Salaries {
		s.salaries[v.TeacherID] = v
	}
}

// commit runs the afterWrite hook. When the hook rejects the snapshot
// the mutation rolls back to the last accepted state, so a failed Add or
// Update leaves no trace the hook never persisted. The caller holds the
// store lock.
func (s *Store) commit() error {
	if s.afterWrite == nil {
		return nil
	}
	d := s.dump()
	if err := s.afterWrite(d); err != nil {
		s.restore(s.committed)
		return err
	}
	s.committed = d
	return nil
}

// uniqueUserFields checks the optional-unique user columns against every
// other identity. exclude skips the row being updated.
func (s *Store) uniqueUserFields(u types.User, exclude string) bool {
	for id, other := range s.users {
		if id == exclude {
			continue
		}
		if u.Email != "" && other.Email == u.Email {
			return false
		}
		if u.CitizenID != "" && other.CitizenID == u.CitizenID {
			return false
		}
	}
	return true
}

// removeUserCascade deletes a base identity and everything that hangs off
// it, mirroring the schema's ON DELETE CASCADE chains. The caller holds
// the lock.
func (s *Store) removeUserCascade(id string) {
	delete(s.users, id)
	delete(s.logins, id)
	if _, ok := s.students[id]; ok {
		delete(s.students, id)
		delete(s.fees, id)
		for k := range s.enrollments {
			if k.StudentID == id {
				delete(s.enrollments, k)
			}
		}
		for k := range s.results {
			if k.StudentID == id {
				delete(s.results, k)
			}
		}
	}
	if _, ok := s.teachers[id]; ok {
		delete(s.teachers, id)
		delete(s.salaries, id)
	}
}

// clearFacultyRefs nulls faculty references on students, teachers, and
// courses, mirroring ON DELETE SET NULL. The caller holds the lock.
func (s *Store) clearFacultyRefs(facultyID string) {
	for id, ext := range s.students {
		if ext.FacultyID == facultyID {
			ext.FacultyID = ""
			s.students[id] = ext
		}
	}
	for id, ext := range s.teachers {
		if ext.FacultyID == facultyID {
			ext.FacultyID = ""
			s.teachers[id] = ext
		}
	}
	for id, c := range s.courses {
		if c.FacultyID == facultyID {
			c.FacultyID = ""
			s.courses[id] = c
		}
	}
}

// removeCourseCascade deletes a course and its junction rows. The caller
// holds the lock.
func (s *Store) removeCourseCascade(courseID string) {
	delete(s.courses, courseID)
	for k := range s.enrollments {
		if k.CourseID == courseID {
			delete(s.enrollments, k)
		}
	}
	for k := range s.results {
		if k.CourseID == courseID {
			delete(s.results, k)
		}
	}
}
