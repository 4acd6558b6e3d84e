package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	require.NoError(t, s.Open(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { s.Close() })
	return s
}

func seedStudent(t *testing.T, s *Store, email, facultyID string) types.Student {
	t.Helper()
	st, err := s.Students().Add(types.Student{
		User:      types.User{FirstName: "Ada", Email: email, Status: types.StatusActive},
		FacultyID: facultyID,
	})
	require.NoError(t, err)
	return st
}

func seedTeacher(t *testing.T, s *Store, email string) types.Teacher {
	t.Helper()
	th, err := s.Teachers().Add(types.Teacher{
		User:        types.User{FirstName: "Grace", Email: email, Status: types.StatusActive},
		Designation: "professor",
	})
	require.NoError(t, err)
	return th
}

func seedCourse(t *testing.T, s *Store, name string) types.Course {
	t.Helper()
	c, err := s.Courses().Add(types.Course{Name: name, Credits: 3})
	require.NoError(t, err)
	return c
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(nil)
	config := types.Config{Backend: types.BackendMemory}

	// Closed store rejects operations.
	_, err := s.Faculties().GetAll()
	assert.ErrorIs(t, err, types.ErrNotConnected)

	require.NoError(t, s.Open(config))
	assert.ErrorIs(t, s.Open(config), types.ErrAlreadyConnected)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	// Reopening starts empty.
	require.NoError(t, s.Open(config))
	defer s.Close()
	faculties, err := s.Faculties().GetAll()
	require.NoError(t, err)
	assert.Empty(t, faculties)
}

func TestFacultyNameUnique(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	require.NoError(t, err)
	require.NotEmpty(t, f.ID)

	_, err = s.Faculties().Add(types.Faculty{Name: "Science"})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	got, err := s.Faculties().FindByName("Science")
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestFacultyRemoveClearsReferences(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Faculties().Add(types.Faculty{Name: "Arts"})
	require.NoError(t, err)
	st := seedStudent(t, s, "ada@example.edu", f.ID)

	c, err := s.Courses().Add(types.Course{Name: "History", Credits: 3, FacultyID: f.ID})
	require.NoError(t, err)

	_, err = s.Faculties().Remove(f.ID)
	require.NoError(t, err)

	gotStudent, err := s.Students().GetByID(st.ID)
	require.NoError(t, err)
	assert.Empty(t, gotStudent.FacultyID)

	gotCourse, err := s.Courses().GetByID(c.ID)
	require.NoError(t, err)
	assert.Empty(t, gotCourse.FacultyID)
}

func TestStudentRejectsMissingFaculty(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Students().Add(types.Student{
		User:      types.User{FirstName: "Ada", Status: types.StatusActive},
		FacultyID: "no-such-faculty",
	})
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "facultyId", verr.Field)

	// No identity row leaks from the rejected add.
	users, err := s.Users().GetAll()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStudentUniqueEmail(t *testing.T) {
	s := newTestStore(t)

	seedStudent(t, s, "ada@example.edu", "")
	_, err := s.Students().Add(types.Student{
		User: types.User{FirstName: "Imposter", Email: "ada@example.edu", Status: types.StatusActive},
	})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	// Unset emails never collide.
	seedStudent(t, s, "", "")
	seedStudent(t, s, "", "")
}

func TestStudentRemoveCascades(t *testing.T) {
	s := newTestStore(t)

	st := seedStudent(t, s, "ada@example.edu", "")
	c := seedCourse(t, s, "Databases")
	key := types.EnrollmentKey{StudentID: st.ID, CourseID: c.ID}

	_, err := s.Logins().Add(types.Login{UserID: st.ID, PasswordHash: "h", Salt: "s"})
	require.NoError(t, err)
	_, err = s.Enrollments().Add(types.Enrollment{StudentID: st.ID, CourseID: c.ID})
	require.NoError(t, err)
	_, err = s.CourseResults().Add(types.CourseResult{StudentID: st.ID, CourseID: c.ID, Marks: 80})
	require.NoError(t, err)
	_, err = s.FeeRecords().Add(types.FeeRecord{StudentID: st.ID, TotalFee: 100})
	require.NoError(t, err)

	_, err = s.Students().Remove(st.ID)
	require.NoError(t, err)

	_, err = s.Users().GetByID(st.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Logins().GetByID(st.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.FeeRecords().GetByID(st.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	ok, err := s.Enrollments().Exists(key)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.CourseResults().Exists(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTeacherRemoveCascadesSalary(t *testing.T) {
	s := newTestStore(t)

	th := seedTeacher(t, s, "grace@example.edu")
	_, err := s.SalaryRecords().Add(types.SalaryRecord{TeacherID: th.ID, BasicMonthlyPay: 5400})
	require.NoError(t, err)

	_, err = s.Teachers().Remove(th.ID)
	require.NoError(t, err)
	_, err = s.SalaryRecords().GetByID(th.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCourseResultDerivesGrade(t *testing.T) {
	s := newTestStore(t)

	st := seedStudent(t, s, "ada@example.edu", "")
	c := seedCourse(t, s, "Databases")

	r, err := s.CourseResults().Add(types.CourseResult{StudentID: st.ID, CourseID: c.ID, Marks: 85})
	require.NoError(t, err)
	assert.Equal(t, "B", r.Grade)

	r.Marks = types.UngradedMarks
	_, err = s.CourseResults().Update(r)
	require.NoError(t, err)
	got, err := s.CourseResults().GetByID(r.Key())
	require.NoError(t, err)
	assert.Equal(t, "-", got.Grade)
}

func TestFindersMirrorRelationalBackend(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Faculties().Add(types.Faculty{Name: "Computing"})
	require.NoError(t, err)
	in := seedStudent(t, s, "in@example.edu", f.ID)
	seedStudent(t, s, "out@example.edu", "")
	th := seedTeacher(t, s, "grace@example.edu")

	students, err := s.Students().FindByFaculty(f.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, in.ID, students[0].ID)

	byEmail, err := s.Students().FindByEmail("out@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "out@example.edu", byEmail.Email)

	teachers, err := s.Teachers().FindByDesignation("prof")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, th.ID, teachers[0].ID)

	_, err = s.FeeRecords().Add(types.FeeRecord{StudentID: in.ID, TotalFee: 100, PaidFee: 50})
	require.NoError(t, err)
	unpaid, err := s.FeeRecords().FindUnpaid()
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
}

func TestAfterWriteHook(t *testing.T) {
	s := NewStore(nil)
	var dumps []TableDump
	s.SetAfterWrite(func(d TableDump) error {
		dumps = append(dumps, d)
		return nil
	})
	require.NoError(t, s.Open(types.Config{Backend: types.BackendMemory}))
	defer s.Close()

	_, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	require.NoError(t, err)
	require.Len(t, dumps, 1)
	require.Len(t, dumps[0].Faculties, 1)
	assert.Equal(t, "Science", dumps[0].Faculties[0].Name)

	// Failed mutations do not fire the hook.
	_, err = s.Faculties().Add(types.Faculty{Name: "Science"})
	require.Error(t, err)
	assert.Len(t, dumps, 1)
}

func TestAfterWriteErrorPropagates(t *testing.T) {
	s := NewStore(nil)
	hookErr := errors.New("disk full")
	s.SetAfterWrite(func(TableDump) error { return hookErr })
	require.NoError(t, s.Open(types.Config{Backend: types.BackendMemory}))
	defer s.Close()

	_, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	assert.ErrorIs(t, err, hookErr)

	// The rejected write leaves no trace behind.
	faculties, err := s.Faculties().GetAll()
	require.NoError(t, err)
	assert.Empty(t, faculties)
}

func TestAfterWriteFailureRollsBackToLastAccepted(t *testing.T) {
	s := NewStore(nil)
	var hookErr error
	s.SetAfterWrite(func(TableDump) error { return hookErr })
	require.NoError(t, s.Open(types.Config{Backend: types.BackendMemory}))
	defer s.Close()

	science, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	require.NoError(t, err)

	// While the hook fails, every mutation rolls back to the last
	// accepted snapshot: adds vanish, removes come back.
	hookErr = errors.New("disk full")
	_, err = s.Faculties().Add(types.Faculty{Name: "Arts"})
	require.ErrorIs(t, err, hookErr)
	_, err = s.Faculties().Remove(science.ID)
	require.ErrorIs(t, err, hookErr)

	faculties, err := s.Faculties().GetAll()
	require.NoError(t, err)
	require.Len(t, faculties, 1)
	assert.Equal(t, science, faculties[0])

	// Once the hook recovers, writes stick again.
	hookErr = nil
	_, err = s.Faculties().Add(types.Faculty{Name: "Arts"})
	require.NoError(t, err)
	faculties, err = s.Faculties().GetAll()
	require.NoError(t, err)
	assert.Len(t, faculties, 2)
}

func TestDumpRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	require.NoError(t, err)
	st := seedStudent(t, s, "ada@example.edu", f.ID)

	dump := s.Dump()

	s2 := NewStore(nil)
	require.NoError(t, s2.Open(types.Config{Backend: types.BackendMemory}))
	defer s2.Close()
	require.NoError(t, s2.Restore(dump))

	got, err := s2.Students().GetByID(st.ID)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}
