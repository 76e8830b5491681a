// Package storage defines persistence contracts for enrollment records.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested enrollment is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates the student already holds an active
	// enrollment for the course.
	ErrAlreadyExists = errors.New("record already exists")
)

// Status is the lifecycle state of an enrollment.
type Status string

const (
	StatusEnrolled  Status = "ENROLLED"
	StatusCompleted Status = "COMPLETED"
	StatusDropped   Status = "DROPPED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusEnrolled, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// Enrollment is one student's registration in one course.
type Enrollment struct {
	ID        int64
	StudentID string
	CourseID  int64
	// Grade is nil until the enrollment has been graded.
	Grade     *float64
	Status    Status
	GradedBy  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GradeUpdate is the change applied when a grade is recorded.
type GradeUpdate struct {
	EnrollmentID int64
	Grade        float64
	GradedBy     string
}

// EnrollmentStore persists enrollment records.
type EnrollmentStore interface {
	// CreateEnrollment inserts an enrollment and returns it with its id.
	// A second ENROLLED row for the same (student, course) fails with
	// ErrAlreadyExists.
	CreateEnrollment(ctx context.Context, enrollment Enrollment) (Enrollment, error)
	GetEnrollment(ctx context.Context, id int64) (Enrollment, error)
	// FindActiveEnrollment returns the ENROLLED record for (student, course).
	FindActiveEnrollment(ctx context.Context, studentID string, courseID int64) (Enrollment, error)
	// ListStudentEnrollments returns every record for the student ordered by id.
	ListStudentEnrollments(ctx context.Context, studentID string) ([]Enrollment, error)
	// RecordGrade sets the grade, marks the record COMPLETED and returns it.
	RecordGrade(ctx context.Context, update GradeUpdate) (Enrollment, error)
	// CountActiveEnrollments returns the number of ENROLLED rows for a course.
	CountActiveEnrollments(ctx context.Context, courseID int64) (int, error)
}
