// Package provision implements the composite-identity lifecycle: a new
// student or teacher is an identity row plus a credential row, created in
// two phases with explicit compensation. The backend guarantees atomicity
// within each phase; this package guarantees that a credentials failure
// never leaves an identity that can exist but not authenticate.
package provision

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/pbkdf2"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Password hashing parameters. Changing them invalidates stored hashes.
const (
	saltBytes  = 16
	hashBytes  = 32
	iterations = 10_000
)

// Provisioner creates composite identities against a Store.
type Provisioner struct {
	log   *slog.Logger
	store types.Store
}

// New creates a provisioner. A nil logger discards diagnostics.
func New(store types.Store, log *slog.Logger) *Provisioner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provisioner{log: log, store: store}
}

// HashPassword derives a credential row for a user from a plaintext
// password using PBKDF2-SHA256 and a fresh random salt.
func HashPassword(userID, password string) (types.Login, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return types.Login{}, fmt.Errorf("generating salt: %w", err)
	}
	hash := pbkdf2.Key([]byte(password), salt, iterations, hashBytes, sha256.New)
	return types.Login{
		UserID:       userID,
		PasswordHash: hex.EncodeToString(hash),
		Salt:         hex.EncodeToString(salt),
	}, nil
}

// VerifyPassword reports whether a plaintext password matches a stored
// credential row.
func VerifyPassword(login types.Login, password string) (bool, error) {
	salt, err := hex.DecodeString(login.Salt)
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	hash := pbkdf2.Key([]byte(password), salt, iterations, hashBytes, sha256.New)
	return hex.EncodeToString(hash) == login.PasswordHash, nil
}

// CreateStudent adds a student identity and its credentials. On a
// credentials failure the identity is removed again; if that removal
// also fails, the orphan is reported as a CompensationError.
func (p *Provisioner) CreateStudent(student types.Student, password string) (types.Student, error) {
	if password == "" {
		return types.Student{}, &types.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	created, err := p.store.Students().Add(student)
	if err != nil {
		return types.Student{}, err
	}
	if err := p.addCredentials(created.ID, password, p.store.Students()); err != nil {
		return types.Student{}, err
	}
	p.log.Info("student provisioned", "id", created.ID)
	return created, nil
}

// CreateTeacher adds a teacher identity and its credentials with the
// same compensation discipline as CreateStudent.
func (p *Provisioner) CreateTeacher(teacher types.Teacher, password string) (types.Teacher, error) {
	if password == "" {
		return types.Teacher{}, &types.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	created, err := p.store.Teachers().Add(teacher)
	if err != nil {
		return types.Teacher{}, err
	}
	if err := p.addCredentials(created.ID, password, p.store.Teachers()); err != nil {
		return types.Teacher{}, err
	}
	p.log.Info("teacher provisioned", "id", created.ID)
	return created, nil
}

// remover is the slice of a DAO the compensation path needs.
type remover interface {
	Remove(id string) (bool, error)
}

func (p *Provisioner) addCredentials(id, password string, identities remover) error {
	login, err := HashPassword(id, password)
	if err == nil {
		_, err = p.store.Logins().Add(login)
	}
	if err == nil {
		return nil
	}

	if _, rollbackErr := identities.Remove(id); rollbackErr != nil {
		p.log.Error("identity rollback failed, orphan left behind",
			"id", id, "cause", err, "rollback", rollbackErr)
		return &types.CompensationError{ID: id, CauseErr: err, CompensateErr: rollbackErr}
	}
	p.log.Warn("credentials failed, identity rolled back", "id", id, "cause", err)
	return fmt.Errorf("creating credentials for %s: %w", id, err)
}
