package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/internal/memory"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore(nil)
	require.NoError(t, s.Open(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { s.Close() })
	return s
}

func testStudent(email string) types.Student {
	return types.Student{
		User: types.User{FirstName: "Ada", Email: email, Status: types.StatusActive},
	}
}

func TestHashPassword(t *testing.T) {
	login, err := HashPassword("u1", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u1", login.UserID)
	assert.NotEmpty(t, login.PasswordHash)
	assert.NotEmpty(t, login.Salt)
	assert.NoError(t, login.Validate())

	ok, err := VerifyPassword(login, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = VerifyPassword(login, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// A fresh salt per credential: same password, different hashes.
	other, err := HashPassword("u1", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, login.Salt, other.Salt)
	assert.NotEqual(t, login.PasswordHash, other.PasswordHash)
}

func TestCreateStudent(t *testing.T) {
	s := newTestStore(t)
	p := New(s, nil)

	created, err := p.CreateStudent(testStudent("ada@example.edu"), "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Identity and credentials both exist.
	_, err = s.Students().GetByID(created.ID)
	require.NoError(t, err)
	login, err := s.Logins().GetByID(created.ID)
	require.NoError(t, err)
	ok, err := VerifyPassword(login, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateTeacher(t *testing.T) {
	s := newTestStore(t)
	p := New(s, nil)

	created, err := p.CreateTeacher(types.Teacher{
		User:        types.User{FirstName: "Grace", Status: types.StatusActive},
		Designation: "professor",
	}, "s3cret")
	require.NoError(t, err)

	_, err = s.Teachers().GetByID(created.ID)
	require.NoError(t, err)
	_, err = s.Logins().GetByID(created.ID)
	require.NoError(t, err)
}

func TestCreateStudentRequiresPassword(t *testing.T) {
	s := newTestStore(t)
	p := New(s, nil)

	_, err := p.CreateStudent(testStudent(""), "")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	students, err := s.Students().GetAll()
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestCreateStudentIdentityFailure(t *testing.T) {
	s := newTestStore(t)
	p := New(s, nil)

	_, err := p.CreateStudent(testStudent("dup@example.edu"), "s3cret")
	require.NoError(t, err)

	// Duplicate identity fails before any credentials are written.
	_, err = p.CreateStudent(testStudent("dup@example.edu"), "s3cret")
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

// failingLogins makes every credential insert fail.
type failingLogins struct {
	types.Store
	err error
}

type failingLoginDAO struct {
	types.LoginDAO
	err error
}

func (s *failingLogins) Logins() types.LoginDAO {
	return &failingLoginDAO{LoginDAO: s.Store.Logins(), err: s.err}
}

func (d *failingLoginDAO) Add(types.Login) (types.Login, error) {
	return types.Login{}, d.err
}

func TestCreateStudentCompensatesOnCredentialFailure(t *testing.T) {
	inner := newTestStore(t)
	cause := errors.New("credentials store down")
	p := New(&failingLogins{Store: inner, err: cause}, nil)

	_, err := p.CreateStudent(testStudent("ada@example.edu"), "s3cret")
	require.ErrorIs(t, err, cause)

	// The identity was rolled back: no orphan that cannot authenticate.
	students, err := inner.Students().GetAll()
	require.NoError(t, err)
	assert.Empty(t, students)
	users, err := inner.Users().GetAll()
	require.NoError(t, err)
	assert.Empty(t, users)
}

// stuckStudents additionally makes identity removal fail, so the
// compensation itself cannot complete.
type stuckStudents struct {
	types.Store
	loginErr  error
	removeErr error
}

type stuckStudentDAO struct {
	types.StudentDAO
	err error
}

func (s *stuckStudents) Logins() types.LoginDAO {
	return &failingLoginDAO{LoginDAO: s.Store.Logins(), err: s.loginErr}
}

func (s *stuckStudents) Students() types.StudentDAO {
	return &stuckStudentDAO{StudentDAO: s.Store.Students(), err: s.removeErr}
}

func (d *stuckStudentDAO) Remove(string) (bool, error) {
	return false, d.err
}

func TestCreateStudentReportsFailedCompensation(t *testing.T) {
	inner := newTestStore(t)
	cause := errors.New("credentials store down")
	rollback := errors.New("identity store down")
	p := New(&stuckStudents{Store: inner, loginErr: cause, removeErr: rollback}, nil)

	_, err := p.CreateStudent(testStudent("ada@example.edu"), "s3cret")
	require.Error(t, err)

	var cerr *types.CompensationError
	require.ErrorAs(t, err, &cerr)
	assert.NotEmpty(t, cerr.ID)
	assert.ErrorIs(t, cerr.CauseErr, cause)
	assert.ErrorIs(t, cerr.CompensateErr, rollback)

	// The orphan identity really is left behind; the error is the signal.
	students, err := inner.Students().GetAll()
	require.NoError(t, err)
	assert.Len(t, students, 1)
}
