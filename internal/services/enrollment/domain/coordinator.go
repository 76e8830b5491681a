// Package domain holds the enrollment coordinator: the seat reservation
// protocol against the course registry and the enrollment/grade lifecycle.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/platform/id"
	"github.com/louisbranch/registrar/internal/services/enrollment/registry"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage"
)

const (
	// MinGrade and MaxGrade bound an uploaded grade, inclusive.
	MinGrade = 0.0
	MaxGrade = 4.0
)

// Registry is the subset of the course registry the coordinator depends on.
type Registry interface {
	ListCourses(ctx context.Context) ([]registry.CourseSnapshot, error)
	SetSeats(ctx context.Context, courseID int64, seats int) error
	ReserveSeat(ctx context.Context, courseID int64, reservationID string) (int, error)
	ReleaseSeat(ctx context.Context, courseID int64, reservationID string) (int, error)
}

// Config controls coordinator behavior.
type Config struct {
	SeatStrategy SeatStrategy
	// Logf receives compensation and degradation events; defaults to log.Printf.
	Logf func(string, ...any)
}

// Coordinator runs the enrollment operations.
type Coordinator struct {
	store    storage.EnrollmentStore
	registry Registry
	strategy SeatStrategy
	locks    *keyedMutex
	logf     func(string, ...any)
	newID    func() (string, error)
}

// NewCoordinator builds a coordinator over an enrollment store and registry.
func NewCoordinator(store storage.EnrollmentStore, reg Registry, cfg Config) *Coordinator {
	strategy := cfg.SeatStrategy
	if strategy == "" {
		strategy = DefaultSeatStrategy
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Coordinator{
		store:    store,
		registry: reg,
		strategy: strategy,
		locks:    newKeyedMutex(),
		logf:     logf,
		newID:    id.NewID,
	}
}

// Strategy reports the seat strategy in use.
func (c *Coordinator) Strategy() SeatStrategy {
	return c.strategy
}

// EnrollInput identifies one enrollment request.
type EnrollInput struct {
	StudentID string
	CourseID  int64
}

// EnrollResult is returned by a successful Enroll.
type EnrollResult struct {
	EnrollmentID int64
	// SeatsRemaining is what the reservation left, not a fresh read.
	SeatsRemaining int
	Message        string
}

// Enroll reserves a seat in the course registry and records an ENROLLED row.
// If the local write fails after the seat was reserved, the seat is released.
func (c *Coordinator) Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error) {
	if err := c.configured(); err != nil {
		return EnrollResult{}, err
	}
	studentID := strings.TrimSpace(in.StudentID)
	if studentID == "" {
		return EnrollResult{}, apperrors.New(apperrors.CodeStudentIDRequired, "student id is required")
	}
	if in.CourseID <= 0 {
		return EnrollResult{}, apperrors.New(apperrors.CodeCourseIDInvalid, "course id must be positive")
	}
	metadata := map[string]string{
		"StudentID": studentID,
		"CourseID":  strconv.FormatInt(in.CourseID, 10),
	}

	_, err := c.store.FindActiveEnrollment(ctx, studentID, in.CourseID)
	switch {
	case err == nil:
		return EnrollResult{}, apperrors.WithMetadata(apperrors.CodeEnrollmentDuplicate, "student already enrolled in course", metadata)
	case !errors.Is(err, storage.ErrNotFound):
		return EnrollResult{}, apperrors.Wrap(apperrors.CodeStorageFailure, "find active enrollment", err)
	}

	remaining, reservationID, err := c.reserveSeat(ctx, in.CourseID, studentID, metadata)
	if err != nil {
		return EnrollResult{}, err
	}

	enrollment, err := c.store.CreateEnrollment(ctx, storage.Enrollment{
		StudentID: studentID,
		CourseID:  in.CourseID,
		Status:    storage.StatusEnrolled,
	})
	if err != nil {
		c.releaseSeat(ctx, in.CourseID, reservationID, studentID)
		if errors.Is(err, storage.ErrAlreadyExists) {
			return EnrollResult{}, apperrors.WithMetadata(apperrors.CodeEnrollmentDuplicate, "student already enrolled in course", metadata)
		}
		return EnrollResult{}, apperrors.Wrap(apperrors.CodeStorageFailure, "create enrollment", err)
	}

	return EnrollResult{
		EnrollmentID:   enrollment.ID,
		SeatsRemaining: remaining,
		Message:        fmt.Sprintf("Successfully enrolled in course %d. Seats remaining: %d.", in.CourseID, remaining),
	}, nil
}

// reserveSeat claims a seat with the configured strategy. The returned
// reservation id is empty for list-then-set strategies, which write an
// absolute count the registry cannot attribute to a reservation.
func (c *Coordinator) reserveSeat(ctx context.Context, courseID int64, studentID string, metadata map[string]string) (int, string, error) {
	switch c.strategy {
	case SeatStrategySerialized:
		unlock := c.locks.Lock(courseID)
		defer unlock()
		remaining, err := c.listThenSet(ctx, courseID, metadata)
		return remaining, "", err
	case SeatStrategySnapshot:
		remaining, err := c.listThenSet(ctx, courseID, metadata)
		return remaining, "", err
	default:
		reservationID, err := c.newID()
		if err != nil {
			return 0, "", apperrors.Wrap(apperrors.CodeStorageFailure, "generate reservation id", err)
		}
		remaining, err := c.registry.ReserveSeat(ctx, courseID, reservationID)
		if err != nil {
			if registry.IsUnavailable(err) {
				// The registry may have committed before the call timed out.
				c.releaseSeat(ctx, courseID, reservationID, studentID)
			}
			return 0, "", reservationError(err, metadata)
		}
		return remaining, reservationID, nil
	}
}

// listThenSet reads the course seat count and writes back one less.
func (c *Coordinator) listThenSet(ctx context.Context, courseID int64, metadata map[string]string) (int, error) {
	courses, err := c.registry.ListCourses(ctx)
	if err != nil {
		return 0, reservationError(err, metadata)
	}
	course, ok := indexCourses(courses)[courseID]
	if !ok {
		return 0, apperrors.WithMetadata(apperrors.CodeCourseNotFound, "course not found in registry", metadata)
	}
	if course.Seats <= 0 {
		return 0, apperrors.WithMetadata(apperrors.CodeCourseSeatsExhausted, "no seats remaining", metadata)
	}

	remaining := course.Seats - 1
	if err := c.registry.SetSeats(ctx, courseID, remaining); err != nil {
		if registry.IsUnavailable(err) {
			return 0, apperrors.WrapWithMetadata(apperrors.CodeRegistryUnavailable, "set seats", metadata, err)
		}
		return 0, apperrors.WrapWithMetadata(apperrors.CodeSeatReservationAborted, "registry rejected seat update", metadata, err)
	}
	return remaining, nil
}

func reservationError(err error, metadata map[string]string) error {
	switch {
	case registry.IsUnavailable(err):
		return apperrors.WrapWithMetadata(apperrors.CodeRegistryUnavailable, "reserve seat", metadata, err)
	case errors.Is(err, registry.ErrCourseNotFound), errors.Is(err, registry.ErrCourseClosed):
		return apperrors.WrapWithMetadata(apperrors.CodeCourseNotFound, "course not available", metadata, err)
	case errors.Is(err, registry.ErrNoSeats):
		return apperrors.WrapWithMetadata(apperrors.CodeCourseSeatsExhausted, "no seats remaining", metadata, err)
	default:
		return apperrors.WrapWithMetadata(apperrors.CodeSeatReservationAborted, "registry rejected reservation", metadata, err)
	}
}

// releaseSeat undoes a reservation. It runs even if the caller gave up, and
// a failure only logs: the enrollment was never written. Releasing a
// reservation id the registry never committed is a no-op there.
func (c *Coordinator) releaseSeat(ctx context.Context, courseID int64, reservationID, studentID string) {
	if c.strategy == SeatStrategySerialized {
		// A release racing a list-then-set would be overwritten.
		unlock := c.locks.Lock(courseID)
		defer unlock()
	}
	remaining, err := c.registry.ReleaseSeat(context.WithoutCancel(ctx), courseID, reservationID)
	if err != nil {
		c.logf("release seat for course %d after failed enrollment of student %s: %v", courseID, studentID, err)
		return
	}
	c.logf("released seat for course %d after failed enrollment of student %s; seats remaining %d", courseID, studentID, remaining)
}

// UploadGradeInput identifies one grade upload.
type UploadGradeInput struct {
	EnrollmentID int64
	FacultyID    string
	Grade        float64
}

// UploadGradeResult is returned by a successful UploadGrade.
type UploadGradeResult struct {
	Grade   float64
	Record  GradeRecord
	Message string
	// EnrichmentDegraded is set when the registry could not be read and the
	// record carries placeholder course fields.
	EnrichmentDegraded bool
}

// UploadGrade records a grade and marks the enrollment COMPLETED. Course
// details are looked up afterwards on a best-effort basis; a registry
// failure never undoes the grade.
func (c *Coordinator) UploadGrade(ctx context.Context, in UploadGradeInput) (UploadGradeResult, error) {
	if err := c.configured(); err != nil {
		return UploadGradeResult{}, err
	}
	metadata := map[string]string{"EnrollmentID": strconv.FormatInt(in.EnrollmentID, 10)}
	if in.EnrollmentID <= 0 {
		return UploadGradeResult{}, apperrors.WithMetadata(apperrors.CodeEnrollmentIDInvalid, "enrollment id must be positive", metadata)
	}

	if _, err := c.store.GetEnrollment(ctx, in.EnrollmentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return UploadGradeResult{}, apperrors.WithMetadata(apperrors.CodeEnrollmentNotFound, "enrollment not found", metadata)
		}
		return UploadGradeResult{}, apperrors.Wrap(apperrors.CodeStorageFailure, "get enrollment", err)
	}
	if math.IsNaN(in.Grade) || in.Grade < MinGrade || in.Grade > MaxGrade {
		return UploadGradeResult{}, apperrors.WithMetadata(apperrors.CodeGradeOutOfRange, "grade out of range", metadata)
	}

	updated, err := c.store.RecordGrade(ctx, storage.GradeUpdate{
		EnrollmentID: in.EnrollmentID,
		Grade:        in.Grade,
		GradedBy:     strings.TrimSpace(in.FacultyID),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return UploadGradeResult{}, apperrors.WithMetadata(apperrors.CodeEnrollmentNotFound, "enrollment not found", metadata)
		}
		return UploadGradeResult{}, apperrors.Wrap(apperrors.CodeStorageFailure, "record grade", err)
	}

	result := UploadGradeResult{
		Grade:   in.Grade,
		Message: fmt.Sprintf("Grade %.1f uploaded successfully for enrollment %d.", in.Grade, in.EnrollmentID),
	}
	courses, err := c.registry.ListCourses(ctx)
	if err != nil {
		c.logf("grade enrichment for enrollment %d degraded: %v", in.EnrollmentID, err)
		result.EnrichmentDegraded = true
		result.Record = newGradeRecord(updated, registry.CourseSnapshot{}, false)
		return result, nil
	}
	course, found := indexCourses(courses)[updated.CourseID]
	result.Record = newGradeRecord(updated, course, found)
	return result, nil
}

// ViewGrades returns every enrollment of a student with course details.
// Unlike UploadGrade the course lookup is required: a registry failure fails
// the call.
func (c *Coordinator) ViewGrades(ctx context.Context, studentID string) ([]GradeRecord, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, apperrors.New(apperrors.CodeStudentIDRequired, "student id is required")
	}
	metadata := map[string]string{"StudentID": studentID}

	enrollments, err := c.store.ListStudentEnrollments(ctx, studentID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "list student enrollments", err)
	}
	if len(enrollments) == 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeNoEnrollments, "student has no enrollments", metadata)
	}

	courses, err := c.registry.ListCourses(ctx)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeRegistryUnavailable, "list courses", metadata, err)
	}
	byID := indexCourses(courses)

	records := make([]GradeRecord, 0, len(enrollments))
	for _, enrollment := range enrollments {
		course, found := byID[enrollment.CourseID]
		records = append(records, newGradeRecord(enrollment, course, found))
	}
	return records, nil
}

func (c *Coordinator) configured() error {
	if c == nil || c.store == nil || c.registry == nil {
		return apperrors.New(apperrors.CodeStorageFailure, "enrollment coordinator is not configured")
	}
	return nil
}
