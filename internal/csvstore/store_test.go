package csvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

func openTestStore(t *testing.T, dataDir string) *Store {
	t.Helper()
	s := NewStore(nil)
	require.NoError(t, s.Open(types.Config{Backend: types.BackendCSV, DataDir: dataDir}))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenFreshDirectory(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested")
	s := openTestStore(t, dataDir)

	students, err := s.Students().GetAll()
	require.NoError(t, err)
	assert.Empty(t, students)

	// The data dir exists even before the first write.
	_, err = os.Stat(dataDir)
	assert.NoError(t, err)
}

func TestOpenTwiceFails(t *testing.T) {
	dataDir := t.TempDir()
	s := openTestStore(t, dataDir)
	assert.ErrorIs(t, s.Open(types.Config{Backend: types.BackendCSV, DataDir: dataDir}), types.ErrAlreadyConnected)
}

func TestWritesPersistFiles(t *testing.T) {
	dataDir := t.TempDir()
	s := openTestStore(t, dataDir)

	_, err := s.Faculties().Add(types.Faculty{Name: "Science"})
	require.NoError(t, err)

	// Every table file exists after the first mutation.
	for _, file := range []string{
		FacultiesFile, UsersFile, StudentsFile, TeachersFile, CoursesFile,
		LoginsFile, EnrollmentsFile, ResultsFile, FeesFile, SalariesFile,
	} {
		_, err := os.Stat(filepath.Join(dataDir, file))
		assert.NoError(t, err, file)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestReopenRestoresState(t *testing.T) {
	dataDir := t.TempDir()

	s := NewStore(nil)
	config := types.Config{Backend: types.BackendCSV, DataDir: dataDir}
	require.NoError(t, s.Open(config))

	f, err := s.Faculties().Add(types.Faculty{Name: "Computing"})
	require.NoError(t, err)
	st, err := s.Students().Add(types.Student{
		User: types.User{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Birthday:  types.Date{Day: 10, Month: 12, Year: 1995},
			Email:     "ada@example.edu",
			Status:    types.StatusActive,
		},
		FacultyID: f.ID,
	})
	require.NoError(t, err)
	th, err := s.Teachers().Add(types.Teacher{
		User:            types.User{FirstName: "Grace", Email: "grace@example.edu", Status: types.StatusActive},
		Qualification:   "PhD",
		Designation:     "professor",
		ExperienceYears: 12,
	})
	require.NoError(t, err)
	c, err := s.Courses().Add(types.Course{Name: "Databases", Credits: 4, FacultyID: f.ID})
	require.NoError(t, err)
	_, err = s.Enrollments().Add(types.Enrollment{StudentID: st.ID, CourseID: c.ID})
	require.NoError(t, err)
	r, err := s.CourseResults().Add(types.CourseResult{StudentID: st.ID, CourseID: c.ID, Marks: 92})
	require.NoError(t, err)
	_, err = s.FeeRecords().Add(types.FeeRecord{StudentID: st.ID, TotalFee: 4200.50, PaidFee: 1000})
	require.NoError(t, err)
	_, err = s.SalaryRecords().Add(types.SalaryRecord{TeacherID: th.ID, BasicMonthlyPay: 5400})
	require.NoError(t, err)
	_, err = s.Logins().Add(types.Login{UserID: st.ID, PasswordHash: "h", Salt: "s"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := openTestStore(t, dataDir)

	gotStudent, err := s2.Students().GetByID(st.ID)
	require.NoError(t, err)
	assert.Equal(t, st, gotStudent)

	gotTeacher, err := s2.Teachers().GetByID(th.ID)
	require.NoError(t, err)
	assert.Equal(t, th, gotTeacher)

	gotResult, err := s2.CourseResults().GetByID(r.Key())
	require.NoError(t, err)
	assert.Equal(t, 92, gotResult.Marks)
	assert.Equal(t, "A", gotResult.Grade)

	gotFee, err := s2.FeeRecords().GetByID(st.ID)
	require.NoError(t, err)
	assert.Equal(t, 4200.50, gotFee.TotalFee)

	gotLogin, err := s2.Logins().GetByID(st.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", gotLogin.PasswordHash)
}

func TestOptionalFieldsSurviveReload(t *testing.T) {
	dataDir := t.TempDir()

	s := NewStore(nil)
	config := types.Config{Backend: types.BackendCSV, DataDir: dataDir}
	require.NoError(t, s.Open(config))

	// Everything optional left unset.
	st, err := s.Students().Add(types.Student{
		User: types.User{FirstName: "Min", Status: types.StatusActive},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := openTestStore(t, dataDir)
	got, err := s2.Students().GetByID(st.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LastName)
	assert.True(t, got.Birthday.IsZero())
	assert.Empty(t, got.Email)
	assert.Empty(t, got.CitizenID)
	assert.Empty(t, got.FacultyID)
}

func TestIntegrityEnforcedAfterReload(t *testing.T) {
	dataDir := t.TempDir()

	s := NewStore(nil)
	config := types.Config{Backend: types.BackendCSV, DataDir: dataDir}
	require.NoError(t, s.Open(config))
	_, err := s.Students().Add(types.Student{
		User: types.User{FirstName: "Ada", Email: "ada@example.edu", Status: types.StatusActive},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := openTestStore(t, dataDir)
	_, err = s2.Students().Add(types.Student{
		User: types.User{FirstName: "Imposter", Email: "ada@example.edu", Status: types.StatusActive},
	})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestOpenRejectsCorruptHeader(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, FacultiesFile),
		[]byte("wrong,columns\n"), 0o644))

	s := NewStore(nil)
	err := s.Open(types.Config{Backend: types.BackendCSV, DataDir: dataDir})
	require.Error(t, err)
	var cerr *types.ConnectionError
	assert.ErrorAs(t, err, &cerr)
}

func TestOpenRejectsUnknownRoleOrdinal(t *testing.T) {
	dataDir := t.TempDir()
	header := "id,first_name,last_name,birth_day,birth_month,birth_year,address,citizen_id,email,phone_number,role,status\n"
	record := "u1,Ada,,,,,,,,,9,0\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, UsersFile),
		[]byte(header+record), 0o644))

	s := NewStore(nil)
	err := s.Open(types.Config{Backend: types.BackendCSV, DataDir: dataDir})
	require.Error(t, err)
	var perr *types.ParseError
	assert.ErrorAs(t, err, &perr)
}
