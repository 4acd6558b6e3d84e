package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

type userDAO struct{ s *Store }

func (d *userDAO) GetByID(id string) (types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.User{}, types.ErrNotConnected
	}
	if id == "" {
		return types.User{}, types.ErrInvalidID
	}
	u, ok := d.s.users[id]
	if !ok {
		return types.User{}, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	return u, nil
}

func (d *userDAO) GetAll() ([]types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return collectUsers(d.s, func(types.User) bool { return true }), nil
}

func (d *userDAO) Add(u types.User) (types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.User{}, types.ErrNotConnected
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if err := u.Validate(); err != nil {
		return types.User{}, err
	}
	if _, ok := d.s.users[u.ID]; ok {
		return types.User{}, fmt.Errorf("user %s: %w", u.ID, types.ErrAlreadyExists)
	}
	if !d.s.uniqueUserFields(u, "") {
		return types.User{}, fmt.Errorf("user %s: %w", u.ID, types.ErrAlreadyExists)
	}
	d.s.users[u.ID] = u
	if err := d.s.commit(); err != nil {
		return types.User{}, err
	}
	return u, nil
}

func (d *userDAO) Update(u types.User) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := u.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.users[u.ID]; !ok {
		return false, fmt.Errorf("user %s: %w", u.ID, types.ErrNotFound)
	}
	if !d.s.uniqueUserFields(u, u.ID) {
		return false, fmt.Errorf("user %s: %w", u.ID, types.ErrAlreadyExists)
	}
	d.s.users[u.ID] = u
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *userDAO) Remove(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if id == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.users[id]; !ok {
		return false, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	d.s.removeUserCascade(id)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *userDAO) Exists(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.users[id]
	return ok, nil
}

func (d *userDAO) FindByEmail(email string) (types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.User{}, types.ErrNotConnected
	}
	for _, u := range d.s.users {
		if u.Email != "" && u.Email == email {
			return u, nil
		}
	}
	return types.User{}, fmt.Errorf("user with email %q: %w", email, types.ErrNotFound)
}

func (d *userDAO) FindByStatus(status types.Status) ([]types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return collectUsers(d.s, func(u types.User) bool { return u.Status == status }), nil
}

func (d *userDAO) FindByRole(role types.Role) ([]types.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return collectUsers(d.s, func(u types.User) bool { return u.Role == role }), nil
}

func collectUsers(s *Store, keep func(types.User) bool) []types.User {
	out := make([]types.User, 0, len(s.users))
	for _, u := range s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type studentDAO struct{ s *Store }

// assemble joins the base identity with the extension row.
func (d *studentDAO) assemble(ext StudentExt) (types.Student, bool) {
	u, ok := d.s.users[ext.UserID]
	if !ok {
		return types.Student{}, false
	}
	return types.Student{User: u, FacultyID: ext.FacultyID}, true
}

func (d *studentDAO) GetByID(id string) (types.Student, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Student{}, types.ErrNotConnected
	}
	if id == "" {
		return types.Student{}, types.ErrInvalidID
	}
	ext, ok := d.s.students[id]
	if !ok {
		return types.Student{}, fmt.Errorf("student %s: %w", id, types.ErrNotFound)
	}
	st, ok := d.assemble(ext)
	if !ok {
		return types.Student{}, fmt.Errorf("student %s: %w", id, types.ErrNotFound)
	}
	return st, nil
}

func (d *studentDAO) GetAll() ([]types.Student, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.Student) bool { return true }), nil
}

func (d *studentDAO) Add(st types.Student) (types.Student, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Student{}, types.ErrNotConnected
	}
	if st.ID == "" {
		st.ID = newID()
	}
	st.Role = types.RoleStudent
	if err := st.Validate(); err != nil {
		return types.Student{}, err
	}
	if _, ok := d.s.users[st.ID]; ok {
		return types.Student{}, fmt.Errorf("student %s: %w", st.ID, types.ErrAlreadyExists)
	}
	if !d.s.uniqueUserFields(st.User, "") {
		return types.Student{}, fmt.Errorf("student %s: %w", st.ID, types.ErrAlreadyExists)
	}
	if st.FacultyID != "" {
		if _, ok := d.s.faculties[st.FacultyID]; !ok {
			return types.Student{}, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.users[st.ID] = st.User
	d.s.students[st.ID] = StudentExt{UserID: st.ID, FacultyID: st.FacultyID}
	if err := d.s.commit(); err != nil {
		return types.Student{}, err
	}
	return st, nil
}

func (d *studentDAO) Update(st types.Student) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	st.Role = types.RoleStudent
	if err := st.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.students[st.ID]; !ok {
		return false, fmt.Errorf("student %s: %w", st.ID, types.ErrNotFound)
	}
	if !d.s.uniqueUserFields(st.User, st.ID) {
		return false, fmt.Errorf("student %s: %w", st.ID, types.ErrAlreadyExists)
	}
	if st.FacultyID != "" {
		if _, ok := d.s.faculties[st.FacultyID]; !ok {
			return false, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.users[st.ID] = st.User
	d.s.students[st.ID] = StudentExt{UserID: st.ID, FacultyID: st.FacultyID}
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *studentDAO) Remove(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if id == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.students[id]; !ok {
		return false, fmt.Errorf("student %s: %w", id, types.ErrNotFound)
	}
	d.s.removeUserCascade(id)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *studentDAO) Exists(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.students[id]
	return ok, nil
}

func (d *studentDAO) FindByFaculty(facultyID string) ([]types.Student, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(st types.Student) bool { return st.FacultyID == facultyID }), nil
}

func (d *studentDAO) FindByEmail(email string) (types.Student, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Student{}, types.ErrNotConnected
	}
	for _, ext := range d.s.students {
		if st, ok := d.assemble(ext); ok && st.Email != "" && st.Email == email {
			return st, nil
		}
	}
	return types.Student{}, fmt.Errorf("student with email %q: %w", email, types.ErrNotFound)
}

func (d *studentDAO) collect(keep func(types.Student) bool) []types.Student {
	out := make([]types.Student, 0, len(d.s.students))
	for _, ext := range d.s.students {
		if st, ok := d.assemble(ext); ok && keep(st) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type teacherDAO struct{ s *Store }

func (d *teacherDAO) assemble(ext TeacherExt) (types.Teacher, bool) {
	u, ok := d.s.users[ext.UserID]
	if !ok {
		return types.Teacher{}, false
	}
	return types.Teacher{
		User:                   u,
		FacultyID:              ext.FacultyID,
		Qualification:          ext.Qualification,
		SpecializationSubjects: ext.SpecializationSubjects,
		Designation:            ext.Designation,
		ExperienceYears:        ext.ExperienceYears,
	}, true
}

func extOf(t types.Teacher) TeacherExt {
	return TeacherExt{
		UserID:                 t.ID,
		FacultyID:              t.FacultyID,
		Qualification:          t.Qualification,
		SpecializationSubjects: t.SpecializationSubjects,
		Designation:            t.Designation,
		ExperienceYears:        t.ExperienceYears,
	}
}

func (d *teacherDAO) GetByID(id string) (types.Teacher, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Teacher{}, types.ErrNotConnected
	}
	if id == "" {
		return types.Teacher{}, types.ErrInvalidID
	}
	ext, ok := d.s.teachers[id]
	if !ok {
		return types.Teacher{}, fmt.Errorf("teacher %s: %w", id, types.ErrNotFound)
	}
	t, ok := d.assemble(ext)
	if !ok {
		return types.Teacher{}, fmt.Errorf("teacher %s: %w", id, types.ErrNotFound)
	}
	return t, nil
}

func (d *teacherDAO) GetAll() ([]types.Teacher, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.Teacher) bool { return true }), nil
}

func (d *teacherDAO) Add(t types.Teacher) (types.Teacher, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Teacher{}, types.ErrNotConnected
	}
	if t.ID == "" {
		t.ID = newID()
	}
	t.Role = types.RoleTeacher
	if err := t.Validate(); err != nil {
		return types.Teacher{}, err
	}
	if _, ok := d.s.users[t.ID]; ok {
		return types.Teacher{}, fmt.Errorf("teacher %s: %w", t.ID, types.ErrAlreadyExists)
	}
	if !d.s.uniqueUserFields(t.User, "") {
		return types.Teacher{}, fmt.Errorf("teacher %s: %w", t.ID, types.ErrAlreadyExists)
	}
	if t.FacultyID != "" {
		if _, ok := d.s.faculties[t.FacultyID]; !ok {
			return types.Teacher{}, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.users[t.ID] = t.User
	d.s.teachers[t.ID] = extOf(t)
	if err := d.s.commit(); err != nil {
		return types.Teacher{}, err
	}
	return t, nil
}

func (d *teacherDAO) Update(t types.Teacher) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	t.Role = types.RoleTeacher
	if err := t.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.teachers[t.ID]; !ok {
		return false, fmt.Errorf("teacher %s: %w", t.ID, types.ErrNotFound)
	}
	if !d.s.uniqueUserFields(t.User, t.ID) {
		return false, fmt.Errorf("teacher %s: %w", t.ID, types.ErrAlreadyExists)
	}
	if t.FacultyID != "" {
		if _, ok := d.s.faculties[t.FacultyID]; !ok {
			return false, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.users[t.ID] = t.User
	d.s.teachers[t.ID] = extOf(t)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *teacherDAO) Remove(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if id == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.teachers[id]; !ok {
		return false, fmt.Errorf("teacher %s: %w", id, types.ErrNotFound)
	}
	d.s.removeUserCascade(id)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *teacherDAO) Exists(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.teachers[id]
	return ok, nil
}

func (d *teacherDAO) FindByFaculty(facultyID string) ([]types.Teacher, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(t types.Teacher) bool { return t.FacultyID == facultyID }), nil
}

func (d *teacherDAO) FindByDesignation(substring string) ([]types.Teacher, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(t types.Teacher) bool {
		return strings.Contains(t.Designation, substring)
	}), nil
}

func (d *teacherDAO) collect(keep func(types.Teacher) bool) []types.Teacher {
	out := make([]types.Teacher, 0, len(d.s.teachers))
	for _, ext := range d.s.teachers {
		if t, ok := d.assemble(ext); ok && keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type loginDAO struct{ s *Store }

func (d *loginDAO) GetByID(userID string) (types.Login, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Login{}, types.ErrNotConnected
	}
	if userID == "" {
		return types.Login{}, types.ErrInvalidID
	}
	l, ok := d.s.logins[userID]
	if !ok {
		return types.Login{}, fmt.Errorf("login %s: %w", userID, types.ErrNotFound)
	}
	return l, nil
}

func (d *loginDAO) GetAll() ([]types.Login, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	out := make([]types.Login, 0, len(d.s.logins))
	for _, l := range d.s.logins {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (d *loginDAO) Add(l types.Login) (types.Login, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Login{}, types.ErrNotConnected
	}
	if err := l.Validate(); err != nil {
		return types.Login{}, err
	}
	if _, ok := d.s.users[l.UserID]; !ok {
		return types.Login{}, &types.ValidationError{Field: "userId", Reason: "references a missing user"}
	}
	if _, ok := d.s.logins[l.UserID]; ok {
		return types.Login{}, fmt.Errorf("login %s: %w", l.UserID, types.ErrAlreadyExists)
	}
	d.s.logins[l.UserID] = l
	if err := d.s.commit(); err != nil {
		return types.Login{}, err
	}
	return l, nil
}

func (d *loginDAO) Update(l types.Login) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := l.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.logins[l.UserID]; !ok {
		return false, fmt.Errorf("login %s: %w", l.UserID, types.ErrNotFound)
	}
	d.s.logins[l.UserID] = l
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *loginDAO) Remove(userID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if userID == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.logins[userID]; !ok {
		return false, fmt.Errorf("login %s: %w", userID, types.ErrNotFound)
	}
	delete(d.s.logins, userID)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *loginDAO) Exists(userID string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.logins[userID]
	return ok, nil
}
