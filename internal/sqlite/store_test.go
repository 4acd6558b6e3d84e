package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, s.Open(config))
	t.Cleanup(func() { s.Close() })
	return s
}

// Seed helpers shared by the DAO tests.

func seedFaculty(t *testing.T, s *Store, name string) types.Faculty {
	t.Helper()
	f, err := s.Faculties().Add(types.Faculty{Name: name})
	require.NoError(t, err)
	return f
}

func seedStudent(t *testing.T, s *Store, email, facultyID string) types.Student {
	t.Helper()
	st, err := s.Students().Add(types.Student{
		User: types.User{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Birthday:    types.Date{Day: 10, Month: 12, Year: 1995},
			Email:       email,
			PhoneNumber: "555-0001",
			Status:      types.StatusActive,
			Role:        types.RoleStudent,
		},
		FacultyID: facultyID,
	})
	require.NoError(t, err)
	return st
}

func seedTeacher(t *testing.T, s *Store, email, facultyID string) types.Teacher {
	t.Helper()
	th, err := s.Teachers().Add(types.Teacher{
		User: types.User{
			FirstName: "Grace",
			LastName:  "Hopper",
			Email:     email,
			Status:    types.StatusActive,
			Role:      types.RoleTeacher,
		},
		FacultyID:       facultyID,
		Qualification:   "PhD",
		Designation:     "associate professor",
		ExperienceYears: 12,
	})
	require.NoError(t, err)
	return th
}

func seedCourse(t *testing.T, s *Store, name, facultyID string) types.Course {
	t.Helper()
	c, err := s.Courses().Add(types.Course{Name: name, Credits: 4, FacultyID: facultyID})
	require.NoError(t, err)
	return c
}

func TestStoreOpen(t *testing.T) {
	dataDir := t.TempDir()
	s := NewStore(nil)
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	require.NoError(t, s.Open(config))
	defer s.Close()

	// Database file created inside the data dir.
	_, err := os.Stat(filepath.Join(dataDir, DatabaseFile))
	assert.NoError(t, err)

	// Double open fails.
	assert.ErrorIs(t, s.Open(config), types.ErrAlreadyConnected)
}

func TestStoreOpenCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "dir")
	s := NewStore(nil)
	require.NoError(t, s.Open(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer s.Close()

	_, err := os.Stat(dataDir)
	assert.NoError(t, err)
}

func TestStoreOpenRejectsBadConfig(t *testing.T) {
	s := NewStore(nil)
	assert.ErrorIs(t, s.Open(types.Config{}), types.ErrBackendEmpty)
}

func TestStoreCloseIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestStoreReopenSeesPersistedRows(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	s := NewStore(nil)
	require.NoError(t, s.Open(config))
	f, err := s.Faculties().Add(types.Faculty{Name: "Engineering"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := NewStore(nil)
	require.NoError(t, s2.Open(config))
	defer s2.Close()
	got, err := s2.Faculties().GetByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestFacultyCRUD(t *testing.T) {
	s := newTestStore(t)

	f := seedFaculty(t, s, "Science")
	require.NotEmpty(t, f.ID)

	got, err := s.Faculties().GetByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	byName, err := s.Faculties().FindByName("Science")
	require.NoError(t, err)
	assert.Equal(t, f.ID, byName.ID)

	// Name is unique.
	_, err = s.Faculties().Add(types.Faculty{Name: "Science"})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	f.Name = "Natural Science"
	changed, err := s.Faculties().Update(f)
	require.NoError(t, err)
	assert.True(t, changed)

	removed, err := s.Faculties().Remove(f.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.Faculties().GetByID(f.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Faculties().Remove(f.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFacultyRemoveClearsReferences(t *testing.T) {
	s := newTestStore(t)

	f := seedFaculty(t, s, "Arts")
	st := seedStudent(t, s, "ada@example.edu", f.ID)
	th := seedTeacher(t, s, "grace@example.edu", f.ID)
	c := seedCourse(t, s, "History", f.ID)

	_, err := s.Faculties().Remove(f.ID)
	require.NoError(t, err)

	// Students, teachers, and courses survive with the reference cleared.
	gotStudent, err := s.Students().GetByID(st.ID)
	require.NoError(t, err)
	assert.Empty(t, gotStudent.FacultyID)

	gotTeacher, err := s.Teachers().GetByID(th.ID)
	require.NoError(t, err)
	assert.Empty(t, gotTeacher.FacultyID)

	gotCourse, err := s.Courses().GetByID(c.ID)
	require.NoError(t, err)
	assert.Empty(t, gotCourse.FacultyID)
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	u, err := s.Users().Add(types.User{
		FirstName: "Root",
		Email:     "root@example.edu",
		Role:      types.RoleAdmin,
		Status:    types.StatusActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := s.Users().GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	byEmail, err := s.Users().FindByEmail("root@example.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	admins, err := s.Users().FindByRole(types.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)

	u.Status = types.StatusDisabled
	changed, err := s.Users().Update(u)
	require.NoError(t, err)
	assert.True(t, changed)

	disabled, err := s.Users().FindByStatus(types.StatusDisabled)
	require.NoError(t, err)
	require.Len(t, disabled, 1)
	assert.Equal(t, u.ID, disabled[0].ID)
}

func TestUserOptionalFieldsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	// All optionals unset: they must come back unset, not as empty text
	// mangled into something else.
	u, err := s.Users().Add(types.User{
		FirstName: "Min",
		Role:      types.RoleAdmin,
		Status:    types.StatusActive,
	})
	require.NoError(t, err)

	got, err := s.Users().GetByID(u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LastName)
	assert.True(t, got.Birthday.IsZero())
	assert.Empty(t, got.Address)
	assert.Empty(t, got.CitizenID)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.PhoneNumber)
}

func TestUserUniqueEmailAndCitizenID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users().Add(types.User{
		FirstName: "A", Email: "dup@example.edu", CitizenID: "C-1",
		Role: types.RoleAdmin, Status: types.StatusActive,
	})
	require.NoError(t, err)

	_, err = s.Users().Add(types.User{
		FirstName: "B", Email: "dup@example.edu",
		Role: types.RoleAdmin, Status: types.StatusActive,
	})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	_, err = s.Users().Add(types.User{
		FirstName: "C", CitizenID: "C-1",
		Role: types.RoleAdmin, Status: types.StatusActive,
	})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	// Two users with no email at all are fine: NULL never collides.
	_, err = s.Users().Add(types.User{FirstName: "D", Role: types.RoleAdmin, Status: types.StatusActive})
	require.NoError(t, err)
	_, err = s.Users().Add(types.User{FirstName: "E", Role: types.RoleAdmin, Status: types.StatusActive})
	require.NoError(t, err)
}
