package sqlite

// Schema DDL. Referenced-by tables come before referencing tables so the
// foreign keys resolve during creation. Every statement is IF NOT EXISTS
// so EnsureSchema is idempotent on an already-initialized database.
const (
	createFaculties = `CREATE TABLE IF NOT EXISTS faculties (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT,
    birth_day INTEGER,
    birth_month INTEGER,
    birth_year INTEGER,
    address TEXT,
    citizen_id TEXT UNIQUE,
    email TEXT UNIQUE,
    phone_number TEXT,
    role INTEGER NOT NULL,
    status INTEGER NOT NULL
);`

	createStudents = `CREATE TABLE IF NOT EXISTS students (
    user_id TEXT PRIMARY KEY,
    faculty_id TEXT,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (faculty_id) REFERENCES faculties(id) ON DELETE SET NULL
);`

	createTeachers = `CREATE TABLE IF NOT EXISTS teachers (
    user_id TEXT PRIMARY KEY,
    faculty_id TEXT,
    qualification TEXT,
    specialization_subjects TEXT,
    designation TEXT,
    experience_years INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (faculty_id) REFERENCES faculties(id) ON DELETE SET NULL
);`

	createCourses = `CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    credits INTEGER NOT NULL CHECK (credits BETWEEN 1 AND 10),
    faculty_id TEXT,
    FOREIGN KEY (faculty_id) REFERENCES faculties(id) ON DELETE SET NULL
);`

	createLogins = `CREATE TABLE IF NOT EXISTS logins (
    user_id TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    salt TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);`

	createEnrollments = `CREATE TABLE IF NOT EXISTS enrollments (
    student_id TEXT NOT NULL,
    course_id TEXT NOT NULL,
    PRIMARY KEY (student_id, course_id),
    FOREIGN KEY (student_id) REFERENCES students(user_id) ON DELETE CASCADE,
    FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);`

	createCourseResults = `CREATE TABLE IF NOT EXISTS course_results (
    student_id TEXT NOT NULL,
    course_id TEXT NOT NULL,
    marks INTEGER NOT NULL CHECK (marks BETWEEN -1 AND 100),
    grade TEXT NOT NULL,
    PRIMARY KEY (student_id, course_id),
    FOREIGN KEY (student_id) REFERENCES students(user_id) ON DELETE CASCADE,
    FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);`

	createFeeRecords = `CREATE TABLE IF NOT EXISTS fee_records (
    student_id TEXT PRIMARY KEY,
    total_fee REAL NOT NULL CHECK (total_fee >= 0),
    paid_fee REAL NOT NULL CHECK (paid_fee >= 0 AND paid_fee <= total_fee),
    FOREIGN KEY (student_id) REFERENCES students(user_id) ON DELETE CASCADE
);`

	createSalaryRecords = `CREATE TABLE IF NOT EXISTS salary_records (
    teacher_id TEXT PRIMARY KEY,
    basic_monthly_pay REAL NOT NULL CHECK (basic_monthly_pay >= 0),
    FOREIGN KEY (teacher_id) REFERENCES teachers(user_id) ON DELETE CASCADE
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createFaculties,
	createUsers,
	createStudents,
	createTeachers,
	createCourses,
	createLogins,
	createEnrollments,
	createCourseResults,
	createFeeRecords,
	createSalaryRecords,
}

// EnsureSchema creates all tables in dependency order inside a single
// all-or-nothing transaction. Re-running on an initialized database is a
// no-op.
func (a *Adapter) EnsureSchema() error {
	stmts := make([]Statement, len(schemaDDL))
	for i, ddl := range schemaDDL {
		stmts[i] = Statement{SQL: ddl}
	}
	return a.ExecAll(stmts)
}
