// Package integration exercises the public store factory against every
// backend, checking that sqlite, memory, and csv expose identical
// semantics for the same sequence of operations.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/provision"
	"github.com/mesh-intelligence/registrar/pkg/store"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

var backends = []string{types.BackendSQLite, types.BackendMemory, types.BackendCSV}

// openBackend opens a store of the given kind over an isolated temp dir.
func openBackend(t *testing.T, backend string) types.Store {
	t.Helper()
	s, err := store.Open(types.Config{Backend: backend, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFactoryRejectsUnknownBackend(t *testing.T) {
	_, err := store.New(types.Config{Backend: "oracle"}, nil)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = store.New(types.Config{}, nil)
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestRegistrationWorkflow(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openBackend(t, backend)

			f, err := s.Faculties().Add(types.Faculty{Name: "Computing"})
			require.NoError(t, err)

			p := provision.New(s, nil)
			st, err := p.CreateStudent(types.Student{
				User: types.User{
					FirstName: "Ada",
					LastName:  "Lovelace",
					Email:     "ada@example.edu",
					Status:    types.StatusActive,
				},
				FacultyID: f.ID,
			}, "s3cret")
			require.NoError(t, err)

			c, err := s.Courses().Add(types.Course{Name: "Databases", Credits: 4, FacultyID: f.ID})
			require.NoError(t, err)
			_, err = s.Enrollments().Add(types.Enrollment{StudentID: st.ID, CourseID: c.ID})
			require.NoError(t, err)
			r, err := s.CourseResults().Add(types.CourseResult{StudentID: st.ID, CourseID: c.ID, Marks: 92})
			require.NoError(t, err)
			assert.Equal(t, "A", r.Grade)

			_, err = s.FeeRecords().Add(types.FeeRecord{StudentID: st.ID, TotalFee: 4000, PaidFee: 1500})
			require.NoError(t, err)

			// The provisioned student can authenticate.
			login, err := s.Logins().GetByID(st.ID)
			require.NoError(t, err)
			ok, err := provision.VerifyPassword(login, "s3cret")
			require.NoError(t, err)
			assert.True(t, ok)

			// Reads agree with what was written.
			got, err := s.Students().FindByEmail("ada@example.edu")
			require.NoError(t, err)
			assert.Equal(t, st.ID, got.ID)
			unpaid, err := s.FeeRecords().FindUnpaid()
			require.NoError(t, err)
			require.Len(t, unpaid, 1)
			assert.Equal(t, st.ID, unpaid[0].StudentID)
		})
	}
}

func TestUniquenessAcrossBackends(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openBackend(t, backend)

			_, err := s.Faculties().Add(types.Faculty{Name: "Science"})
			require.NoError(t, err)
			_, err = s.Faculties().Add(types.Faculty{Name: "Science"})
			assert.ErrorIs(t, err, types.ErrAlreadyExists)

			_, err = s.Students().Add(types.Student{
				User: types.User{FirstName: "Ada", Email: "ada@example.edu", Status: types.StatusActive},
			})
			require.NoError(t, err)
			_, err = s.Students().Add(types.Student{
				User: types.User{FirstName: "Imposter", Email: "ada@example.edu", Status: types.StatusActive},
			})
			assert.ErrorIs(t, err, types.ErrAlreadyExists)
		})
	}
}

func TestRemoveCascadesAcrossBackends(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openBackend(t, backend)

			st, err := s.Students().Add(types.Student{
				User: types.User{FirstName: "Ada", Status: types.StatusActive},
			})
			require.NoError(t, err)
			c, err := s.Courses().Add(types.Course{Name: "Databases", Credits: 4})
			require.NoError(t, err)
			key := types.EnrollmentKey{StudentID: st.ID, CourseID: c.ID}
			_, err = s.Enrollments().Add(types.Enrollment{StudentID: st.ID, CourseID: c.ID})
			require.NoError(t, err)
			_, err = s.FeeRecords().Add(types.FeeRecord{StudentID: st.ID, TotalFee: 100})
			require.NoError(t, err)

			_, err = s.Students().Remove(st.ID)
			require.NoError(t, err)

			_, err = s.Users().GetByID(st.ID)
			assert.ErrorIs(t, err, types.ErrNotFound)
			_, err = s.FeeRecords().GetByID(st.ID)
			assert.ErrorIs(t, err, types.ErrNotFound)
			ok, err := s.Enrollments().Exists(key)
			require.NoError(t, err)
			assert.False(t, ok)
			_, err = s.Courses().GetByID(c.ID)
			assert.NoError(t, err)
		})
	}
}

func TestPersistentBackendsSurviveReopen(t *testing.T) {
	for _, backend := range []string{types.BackendSQLite, types.BackendCSV} {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			config := types.Config{Backend: backend, DataDir: dataDir}

			s, err := store.Open(config, nil)
			require.NoError(t, err)
			f, err := s.Faculties().Add(types.Faculty{Name: "Arts"})
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s2, err := store.Open(config, nil)
			require.NoError(t, err)
			defer s2.Close()
			got, err := s2.Faculties().GetByID(f.ID)
			require.NoError(t, err)
			assert.Equal(t, f, got)
		})
	}
}
