package memory

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

type facultyDAO struct{ s *Store }

func (d *facultyDAO) GetByID(id string) (types.Faculty, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Faculty{}, types.ErrNotConnected
	}
	if id == "" {
		return types.Faculty{}, types.ErrInvalidID
	}
	f, ok := d.s.faculties[id]
	if !ok {
		return types.Faculty{}, fmt.Errorf("faculty %s: %w", id, types.ErrNotFound)
	}
	return f, nil
}

func (d *facultyDAO) GetAll() ([]types.Faculty, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	out := make([]types.Faculty, 0, len(d.s.faculties))
	for _, f := range d.s.faculties {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *facultyDAO) Add(f types.Faculty) (types.Faculty, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Faculty{}, types.ErrNotConnected
	}
	if f.ID == "" {
		f.ID = newID()
	}
	if err := f.Validate(); err != nil {
		return types.Faculty{}, err
	}
	if _, ok := d.s.faculties[f.ID]; ok {
		return types.Faculty{}, fmt.Errorf("faculty %s: %w", f.ID, types.ErrAlreadyExists)
	}
	for _, other := range d.s.faculties {
		if other.Name == f.Name {
			return types.Faculty{}, fmt.Errorf("faculty %q: %w", f.Name, types.ErrAlreadyExists)
		}
	}
	d.s.faculties[f.ID] = f
	if err := d.s.commit(); err != nil {
		return types.Faculty{}, err
	}
	return f, nil
}

func (d *facultyDAO) Update(f types.Faculty) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := f.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.faculties[f.ID]; !ok {
		return false, fmt.Errorf("faculty %s: %w", f.ID, types.ErrNotFound)
	}
	for id, other := range d.s.faculties {
		if id != f.ID && other.Name == f.Name {
			return false, fmt.Errorf("faculty %q: %w", f.Name, types.ErrAlreadyExists)
		}
	}
	d.s.faculties[f.ID] = f
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *facultyDAO) Remove(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if id == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.faculties[id]; !ok {
		return false, fmt.Errorf("faculty %s: %w", id, types.ErrNotFound)
	}
	delete(d.s.faculties, id)
	d.s.clearFacultyRefs(id)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *facultyDAO) Exists(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.faculties[id]
	return ok, nil
}

func (d *facultyDAO) FindByName(name string) (types.Faculty, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Faculty{}, types.ErrNotConnected
	}
	for _, f := range d.s.faculties {
		if f.Name == name {
			return f, nil
		}
	}
	return types.Faculty{}, fmt.Errorf("faculty %q: %w", name, types.ErrNotFound)
}

type courseDAO struct{ s *Store }

func (d *courseDAO) GetByID(id string) (types.Course, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Course{}, types.ErrNotConnected
	}
	if id == "" {
		return types.Course{}, types.ErrInvalidID
	}
	c, ok := d.s.courses[id]
	if !ok {
		return types.Course{}, fmt.Errorf("course %s: %w", id, types.ErrNotFound)
	}
	return c, nil
}

func (d *courseDAO) GetAll() ([]types.Course, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.Course) bool { return true }), nil
}

func (d *courseDAO) Add(c types.Course) (types.Course, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Course{}, types.ErrNotConnected
	}
	if c.ID == "" {
		c.ID = newID()
	}
	if err := c.Validate(); err != nil {
		return types.Course{}, err
	}
	if _, ok := d.s.courses[c.ID]; ok {
		return types.Course{}, fmt.Errorf("course %s: %w", c.ID, types.ErrAlreadyExists)
	}
	if c.FacultyID != "" {
		if _, ok := d.s.faculties[c.FacultyID]; !ok {
			return types.Course{}, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.courses[c.ID] = c
	if err := d.s.commit(); err != nil {
		return types.Course{}, err
	}
	return c, nil
}

func (d *courseDAO) Update(c types.Course) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := c.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.courses[c.ID]; !ok {
		return false, fmt.Errorf("course %s: %w", c.ID, types.ErrNotFound)
	}
	if c.FacultyID != "" {
		if _, ok := d.s.faculties[c.FacultyID]; !ok {
			return false, &types.ValidationError{Field: "facultyId", Reason: "references a missing faculty"}
		}
	}
	d.s.courses[c.ID] = c
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *courseDAO) Remove(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if id == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.courses[id]; !ok {
		return false, fmt.Errorf("course %s: %w", id, types.ErrNotFound)
	}
	d.s.removeCourseCascade(id)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *courseDAO) Exists(id string) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.courses[id]
	return ok, nil
}

func (d *courseDAO) FindByFaculty(facultyID string) ([]types.Course, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(c types.Course) bool { return c.FacultyID == facultyID }), nil
}

func (d *courseDAO) collect(keep func(types.Course) bool) []types.Course {
	out := make([]types.Course, 0, len(d.s.courses))
	for _, c := range d.s.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type enrollmentDAO struct{ s *Store }

// checkJunctionRefs verifies both sides of a junction key exist. The
// caller holds the lock.
func (s *Store) checkJunctionRefs(key types.EnrollmentKey) error {
	if _, ok := s.students[key.StudentID]; !ok {
		return &types.ValidationError{Field: "studentId", Reason: "references a missing student"}
	}
	if _, ok := s.courses[key.CourseID]; !ok {
		return &types.ValidationError{Field: "courseId", Reason: "references a missing course"}
	}
	return nil
}

func (d *enrollmentDAO) GetByID(key types.EnrollmentKey) (types.Enrollment, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Enrollment{}, types.ErrNotConnected
	}
	if key.StudentID == "" || key.CourseID == "" {
		return types.Enrollment{}, types.ErrInvalidID
	}
	e, ok := d.s.enrollments[key]
	if !ok {
		return types.Enrollment{}, fmt.Errorf("enrollment %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return e, nil
}

func (d *enrollmentDAO) GetAll() ([]types.Enrollment, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.Enrollment) bool { return true }), nil
}

func (d *enrollmentDAO) Add(e types.Enrollment) (types.Enrollment, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.Enrollment{}, types.ErrNotConnected
	}
	if err := e.Validate(); err != nil {
		return types.Enrollment{}, err
	}
	if _, ok := d.s.enrollments[e.Key()]; ok {
		return types.Enrollment{}, fmt.Errorf("enrollment %s/%s: %w", e.StudentID, e.CourseID, types.ErrAlreadyExists)
	}
	if err := d.s.checkJunctionRefs(e.Key()); err != nil {
		return types.Enrollment{}, err
	}
	d.s.enrollments[e.Key()] = e
	if err := d.s.commit(); err != nil {
		return types.Enrollment{}, err
	}
	return e, nil
}

// Update is a no-op on a pure junction row: there is nothing beyond the
// key to change. It reports whether the row exists.
func (d *enrollmentDAO) Update(e types.Enrollment) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := e.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.enrollments[e.Key()]; !ok {
		return false, fmt.Errorf("enrollment %s/%s: %w", e.StudentID, e.CourseID, types.ErrNotFound)
	}
	return false, nil
}

func (d *enrollmentDAO) Remove(key types.EnrollmentKey) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if key.StudentID == "" || key.CourseID == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.enrollments[key]; !ok {
		return false, fmt.Errorf("enrollment %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	delete(d.s.enrollments, key)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *enrollmentDAO) Exists(key types.EnrollmentKey) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.enrollments[key]
	return ok, nil
}

func (d *enrollmentDAO) FindByStudent(studentID string) ([]types.Enrollment, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(e types.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (d *enrollmentDAO) FindByCourse(courseID string) ([]types.Enrollment, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(e types.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (d *enrollmentDAO) collect(keep func(types.Enrollment) bool) []types.Enrollment {
	out := make([]types.Enrollment, 0, len(d.s.enrollments))
	for _, e := range d.s.enrollments {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}

type resultDAO struct{ s *Store }

func (d *resultDAO) GetByID(key types.EnrollmentKey) (types.CourseResult, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.CourseResult{}, types.ErrNotConnected
	}
	if key.StudentID == "" || key.CourseID == "" {
		return types.CourseResult{}, types.ErrInvalidID
	}
	r, ok := d.s.results[key]
	if !ok {
		return types.CourseResult{}, fmt.Errorf("course result %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	return r, nil
}

func (d *resultDAO) GetAll() ([]types.CourseResult, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(types.CourseResult) bool { return true }), nil
}

func (d *resultDAO) Add(r types.CourseResult) (types.CourseResult, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return types.CourseResult{}, types.ErrNotConnected
	}
	if err := r.Validate(); err != nil {
		return types.CourseResult{}, err
	}
	if _, ok := d.s.results[r.Key()]; ok {
		return types.CourseResult{}, fmt.Errorf("course result %s/%s: %w", r.StudentID, r.CourseID, types.ErrAlreadyExists)
	}
	if err := d.s.checkJunctionRefs(r.Key()); err != nil {
		return types.CourseResult{}, err
	}
	r.Grade = types.GradeFor(r.Marks)
	d.s.results[r.Key()] = r
	if err := d.s.commit(); err != nil {
		return types.CourseResult{}, err
	}
	return r, nil
}

func (d *resultDAO) Update(r types.CourseResult) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if err := r.Validate(); err != nil {
		return false, err
	}
	if _, ok := d.s.results[r.Key()]; !ok {
		return false, fmt.Errorf("course result %s/%s: %w", r.StudentID, r.CourseID, types.ErrNotFound)
	}
	r.Grade = types.GradeFor(r.Marks)
	d.s.results[r.Key()] = r
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *resultDAO) Remove(key types.EnrollmentKey) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	if key.StudentID == "" || key.CourseID == "" {
		return false, types.ErrInvalidID
	}
	if _, ok := d.s.results[key]; !ok {
		return false, fmt.Errorf("course result %s/%s: %w", key.StudentID, key.CourseID, types.ErrNotFound)
	}
	delete(d.s.results, key)
	if err := d.s.commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *resultDAO) Exists(key types.EnrollmentKey) (bool, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return false, types.ErrNotConnected
	}
	_, ok := d.s.results[key]
	return ok, nil
}

func (d *resultDAO) FindByStudent(studentID string) ([]types.CourseResult, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(r types.CourseResult) bool { return r.StudentID == studentID }), nil
}

func (d *resultDAO) FindByCourse(courseID string) ([]types.CourseResult, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if !d.s.open {
		return nil, types.ErrNotConnected
	}
	return d.collect(func(r types.CourseResult) bool { return r.CourseID == courseID }), nil
}

func (d *resultDAO) collect(keep func(types.CourseResult) bool) []types.CourseResult {
	out := make([]types.CourseResult, 0, len(d.s.results))
	for _, r := range d.s.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}
