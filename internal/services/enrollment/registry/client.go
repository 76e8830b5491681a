// Package registry is the enrollment service's client for the course
// registry. It bounds every call with a timeout and turns gRPC statuses into
// errors the coordinator can branch on.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Dependency names the course registry in DependencyUnavailableError.
const Dependency = "course.registry"

var (
	// ErrCourseNotFound indicates the registry has no such course.
	ErrCourseNotFound = errors.New("course not found")
	// ErrCourseClosed indicates the course exists but is not open.
	ErrCourseClosed = errors.New("course is closed")
	// ErrNoSeats indicates the registry refused a reservation for capacity.
	ErrNoSeats = errors.New("no seats remaining")
	// ErrInvalidSeatCount indicates the registry rejected a seat count.
	ErrInvalidSeatCount = errors.New("invalid seat count")
	// ErrWriteConflict indicates the registry aborted a write.
	ErrWriteConflict = errors.New("registry write conflict")
)

// DependencyUnavailableError reports that the course registry could not be
// reached or failed internally.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

// Error returns the dependency failure message.
func (e *DependencyUnavailableError) Error() string {
	if e == nil || strings.TrimSpace(e.Dependency) == "" {
		return "dependency unavailable"
	}
	if e.Err == nil {
		return e.Dependency + " unavailable"
	}
	return e.Dependency + " unavailable: " + e.Err.Error()
}

// Unwrap exposes the wrapped dependency failure.
func (e *DependencyUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsUnavailable reports whether err is a registry outage.
func IsUnavailable(err error) bool {
	var dependencyErr *DependencyUnavailableError
	return errors.As(err, &dependencyErr)
}

// CourseSnapshot is a point-in-time copy of one course. It is stale as soon
// as it is returned.
type CourseSnapshot struct {
	ID    int64
	Code  string
	Title string
	Seats int
	Open  bool
}

// Client calls the course registry.
type Client struct {
	courses     coursev1.CourseServiceClient
	callTimeout time.Duration
}

// NewClient wraps a course service client. A non-positive timeout uses
// timeouts.RegistryCall.
func NewClient(courses coursev1.CourseServiceClient, callTimeout time.Duration) *Client {
	if callTimeout <= 0 {
		callTimeout = timeouts.RegistryCall
	}
	return &Client{courses: courses, callTimeout: callTimeout}
}

func (c *Client) call(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c == nil || c.courses == nil {
		return nil, nil, &DependencyUnavailableError{Dependency: Dependency, Err: errors.New("registry client is not configured")}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	return callCtx, cancel, nil
}

// ListCourses returns a snapshot of every open course.
func (c *Client) ListCourses(ctx context.Context) ([]CourseSnapshot, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := c.courses.ListCourses(callCtx, &coursev1.ListCoursesRequest{})
	if err != nil {
		return nil, translate("list courses", err)
	}
	snapshots := make([]CourseSnapshot, 0, len(resp.GetCourses()))
	for _, course := range resp.GetCourses() {
		snapshots = append(snapshots, CourseSnapshot{
			ID:    course.GetId(),
			Code:  course.GetCode(),
			Title: course.GetTitle(),
			Seats: int(course.GetSeats()),
			Open:  course.GetOpen(),
		})
	}
	return snapshots, nil
}

// SetSeats writes an absolute seat count. The registry applies it without
// checking what the count was.
func (c *Client) SetSeats(ctx context.Context, courseID int64, seats int) error {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := c.courses.SetSeats(callCtx, &coursev1.SetSeatsRequest{CourseId: courseID, Seats: int32(seats)}); err != nil {
		return translate("set seats", err)
	}
	return nil
}

// ReserveSeat atomically claims one seat and returns the seats remaining.
// A non-empty reservationID makes the call idempotent: retrying it with the
// same id reports the first outcome instead of claiming a second seat.
func (c *Client) ReserveSeat(ctx context.Context, courseID int64, reservationID string) (int, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	resp, err := c.courses.ReserveSeat(callCtx, &coursev1.ReserveSeatRequest{CourseId: courseID, ReservationId: reservationID})
	if err != nil {
		return 0, translate("reserve seat", err)
	}
	return int(resp.GetSeatsRemaining()), nil
}

// ReleaseSeat returns one seat and reports the seats remaining. With a
// reservationID only that reservation's seat is returned, at most once.
func (c *Client) ReleaseSeat(ctx context.Context, courseID int64, reservationID string) (int, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	resp, err := c.courses.ReleaseSeat(callCtx, &coursev1.ReleaseSeatRequest{CourseId: courseID, ReservationId: reservationID})
	if err != nil {
		return 0, translate("release seat", err)
	}
	return int(resp.GetSeatsRemaining()), nil
}

// translate maps a registry status onto the package errors. Anything that is
// not a business answer from the registry counts as an outage.
func translate(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &DependencyUnavailableError{Dependency: Dependency, Err: fmt.Errorf("%s: %w", op, err)}
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, ErrCourseNotFound)
	case codes.FailedPrecondition:
		return fmt.Errorf("%s: %w", op, ErrCourseClosed)
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", op, ErrInvalidSeatCount)
	case codes.Aborted:
		return fmt.Errorf("%s: %w", op, ErrWriteConflict)
	case codes.ResourceExhausted:
		if reason(st) == string(apperrors.CodeCourseSeatsExhausted) {
			return fmt.Errorf("%s: %w", op, ErrNoSeats)
		}
	}
	return &DependencyUnavailableError{Dependency: Dependency, Err: fmt.Errorf("%s: %w", op, err)}
}

func reason(st *status.Status) string {
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.GetDomain() == apperrors.Domain {
			return info.GetReason()
		}
	}
	return ""
}
