package types

// CRUD is the generic DAO contract every entity DAO provides.
//
// Add returns the entity as stored (derived fields filled in) and fails
// with ErrAlreadyExists when the primary ID or any unique field is taken.
// Update reports whether a row changed and fails with ErrNotFound for an
// unknown ID, or ErrAlreadyExists when a unique field would collide with
// a different row. Remove reports whether a row was deleted and fails
// with ErrNotFound for an unknown ID.
type CRUD[E any, ID comparable] interface {
	GetByID(id ID) (E, error)
	GetAll() ([]E, error)
	Add(e E) (E, error)
	Update(e E) (bool, error)
	Remove(id ID) (bool, error)
	Exists(id ID) (bool, error)
}

// FacultyDAO stores faculties.
type FacultyDAO interface {
	CRUD[Faculty, string]
	FindByName(name string) (Faculty, error)
}

// UserDAO stores base identities, including admin users that have no
// extension row. Student and Teacher identities are created through
// their own DAOs, not here.
type UserDAO interface {
	CRUD[User, string]
	FindByEmail(email string) (User, error)
	FindByStatus(status Status) ([]User, error)
	FindByRole(role Role) ([]User, error)
}

// StudentDAO stores students. Add and Update span the base identity and
// the extension row atomically; Remove deletes the base identity and
// relies on cascades for everything the student owns.
type StudentDAO interface {
	CRUD[Student, string]
	FindByFaculty(facultyID string) ([]Student, error)
	FindByEmail(email string) (Student, error)
}

// TeacherDAO stores teachers with the same composite-row discipline as
// StudentDAO.
type TeacherDAO interface {
	CRUD[Teacher, string]
	FindByFaculty(facultyID string) ([]Teacher, error)
	FindByDesignation(substring string) ([]Teacher, error)
}

// CourseDAO stores courses.
type CourseDAO interface {
	CRUD[Course, string]
	FindByFaculty(facultyID string) ([]Course, error)
}

// LoginDAO stores credential rows.
type LoginDAO interface {
	CRUD[Login, string]
}

// EnrollmentDAO stores student-course junction rows.
type EnrollmentDAO interface {
	CRUD[Enrollment, EnrollmentKey]
	FindByStudent(studentID string) ([]Enrollment, error)
	FindByCourse(courseID string) ([]Enrollment, error)
}

// CourseResultDAO stores graded results.
type CourseResultDAO interface {
	CRUD[CourseResult, EnrollmentKey]
	FindByStudent(studentID string) ([]CourseResult, error)
	FindByCourse(courseID string) ([]CourseResult, error)
}

// FeeRecordDAO stores fee ledgers.
type FeeRecordDAO interface {
	CRUD[FeeRecord, string]
	FindUnpaid() ([]FeeRecord, error)
}

// SalaryRecordDAO stores salary rows.
type SalaryRecordDAO interface {
	CRUD[SalaryRecord, string]
}

// Store is the backend-agnostic entry point: one DAO accessor per entity
// plus the connection lifecycle. A Store instance is not safe for
// concurrent use; callers serialize access externally.
type Store interface {
	// Open connects the backend described by config. Returns
	// ErrAlreadyConnected when called on an open store.
	Open(config Config) error

	// Close releases backend resources. Idempotent.
	Close() error

	Faculties() FacultyDAO
	Users() UserDAO
	Students() StudentDAO
	Teachers() TeacherDAO
	Courses() CourseDAO
	Logins() LoginDAO
	Enrollments() EnrollmentDAO
	CourseResults() CourseResultDAO
	FeeRecords() FeeRecordDAO
	SalaryRecords() SalaryRecordDAO
}
