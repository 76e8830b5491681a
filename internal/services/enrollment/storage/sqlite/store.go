// Package sqlite provides a SQLite-backed enrollment store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/registrar/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

const enrollmentColumns = `id, student_id, course_id, grade, status, graded_by, created_at, updated_at`

// Store persists enrollment state in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite enrollment store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	sqlDB, err := sql.Open("sqlite", filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnrollment(row rowScanner) (storage.Enrollment, error) {
	var enrollment storage.Enrollment
	var grade sql.NullFloat64
	var status string
	var createdAt, updatedAt int64
	if err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&grade,
		&status,
		&enrollment.GradedBy,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Enrollment{}, err
	}
	if grade.Valid {
		value := grade.Float64
		enrollment.Grade = &value
	}
	enrollment.Status = storage.Status(status)
	enrollment.CreatedAt = fromMillis(createdAt)
	enrollment.UpdatedAt = fromMillis(updatedAt)
	return enrollment, nil
}

// CreateEnrollment inserts one enrollment. An empty status means ENROLLED.
func (s *Store) CreateEnrollment(ctx context.Context, enrollment storage.Enrollment) (storage.Enrollment, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Enrollment{}, err
	}
	studentID := strings.TrimSpace(enrollment.StudentID)
	if studentID == "" {
		return storage.Enrollment{}, fmt.Errorf("student id is required")
	}
	if enrollment.CourseID <= 0 {
		return storage.Enrollment{}, fmt.Errorf("course id must be positive")
	}
	if enrollment.Status == "" {
		enrollment.Status = storage.StatusEnrolled
	}
	if !enrollment.Status.Valid() {
		return storage.Enrollment{}, fmt.Errorf("unknown status %q", enrollment.Status)
	}
	createdAt := enrollment.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	var grade sql.NullFloat64
	if enrollment.Grade != nil {
		grade = sql.NullFloat64{Float64: *enrollment.Grade, Valid: true}
	}
	created, err := scanEnrollment(s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO enrollments (student_id, course_id, grade, status, graded_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+enrollmentColumns,
		studentID,
		enrollment.CourseID,
		grade,
		string(enrollment.Status),
		strings.TrimSpace(enrollment.GradedBy),
		toMillis(createdAt),
		toMillis(createdAt),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Enrollment{}, storage.ErrAlreadyExists
		}
		return storage.Enrollment{}, fmt.Errorf("create enrollment: %w", err)
	}
	return created, nil
}

// GetEnrollment returns one enrollment by id.
func (s *Store) GetEnrollment(ctx context.Context, id int64) (storage.Enrollment, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Enrollment{}, err
	}
	enrollment, err := scanEnrollment(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Enrollment{}, storage.ErrNotFound
		}
		return storage.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}
	return enrollment, nil
}

// FindActiveEnrollment returns the ENROLLED record for (student, course).
func (s *Store) FindActiveEnrollment(ctx context.Context, studentID string, courseID int64) (storage.Enrollment, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Enrollment{}, err
	}
	enrollment, err := scanEnrollment(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+enrollmentColumns+`
		   FROM enrollments
		  WHERE student_id = ? AND course_id = ? AND status = ?`,
		strings.TrimSpace(studentID), courseID, string(storage.StatusEnrolled),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Enrollment{}, storage.ErrNotFound
		}
		return storage.Enrollment{}, fmt.Errorf("find active enrollment: %w", err)
	}
	return enrollment, nil
}

// ListStudentEnrollments returns every enrollment of a student ordered by id.
func (s *Store) ListStudentEnrollments(ctx context.Context, studentID string) ([]storage.Enrollment, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+enrollmentColumns+`
		   FROM enrollments
		  WHERE student_id = ?
		  ORDER BY id ASC`,
		strings.TrimSpace(studentID),
	)
	if err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []storage.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("list student enrollments: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// RecordGrade stores the grade and marks the enrollment COMPLETED whatever
// its previous status.
func (s *Store) RecordGrade(ctx context.Context, update storage.GradeUpdate) (storage.Enrollment, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Enrollment{}, err
	}
	enrollment, err := scanEnrollment(s.sqlDB.QueryRowContext(ctx,
		`UPDATE enrollments
		    SET grade = ?, status = ?, graded_by = ?, updated_at = ?
		  WHERE id = ?
		 RETURNING `+enrollmentColumns,
		update.Grade,
		string(storage.StatusCompleted),
		strings.TrimSpace(update.GradedBy),
		toMillis(s.now()),
		update.EnrollmentID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Enrollment{}, storage.ErrNotFound
		}
		return storage.Enrollment{}, fmt.Errorf("record grade: %w", err)
	}
	return enrollment, nil
}

// CountActiveEnrollments returns the number of ENROLLED rows for a course.
func (s *Store) CountActiveEnrollments(ctx context.Context, courseID int64) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = ? AND status = ?`,
		courseID, string(storage.StatusEnrolled),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active enrollments: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "enrollments.")
}

var _ storage.EnrollmentStore = (*Store)(nil)
