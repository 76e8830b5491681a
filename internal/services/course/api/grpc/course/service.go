// Package course exposes the course registry over gRPC.
package course

import (
	"context"
	"errors"
	"strconv"
	"strings"

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/services/course/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes course.v1 gRPC operations.
type Service struct {
	coursev1.UnimplementedCourseServiceServer
	store storage.CourseStore
}

// NewService creates a course service backed by course storage.
func NewService(store storage.CourseStore) *Service {
	return &Service{store: store}
}

func (s *Service) configured() error {
	if s == nil || s.store == nil {
		return status.Error(codes.Internal, "course store is not configured")
	}
	return nil
}

// ListCourses returns every open course.
func (s *Service) ListCourses(ctx context.Context, _ *coursev1.ListCoursesRequest) (*coursev1.ListCoursesResponse, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	courses, err := s.store.ListOpenCourses(ctx)
	if err != nil {
		return nil, storeStatus("list courses", 0, err)
	}
	resp := &coursev1.ListCoursesResponse{Courses: make([]*coursev1.Course, 0, len(courses))}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, toProto(course))
	}
	return resp, nil
}

// SetSeats overwrites the remaining seat count of one course.
func (s *Service) SetSeats(ctx context.Context, in *coursev1.SetSeatsRequest) (*coursev1.SetSeatsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "set seats request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	if err := validateCourseID(in.GetCourseId()); err != nil {
		return nil, err
	}
	if in.GetSeats() < 0 {
		return nil, apperrors.ToStatus(apperrors.WithMetadata(apperrors.CodeSeatCountNegative, "seats must not be negative", map[string]string{
			"CourseID": strconv.FormatInt(in.GetCourseId(), 10),
		}))
	}
	course, err := s.store.SetSeats(ctx, in.GetCourseId(), int(in.GetSeats()))
	if err != nil {
		return nil, storeStatus("set seats", in.GetCourseId(), err)
	}
	return &coursev1.SetSeatsResponse{Course: toProto(course)}, nil
}

// ReserveSeat atomically claims one seat. A repeated reservation id returns
// the first result.
func (s *Service) ReserveSeat(ctx context.Context, in *coursev1.ReserveSeatRequest) (*coursev1.ReserveSeatResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "reserve seat request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	if err := validateCourseID(in.GetCourseId()); err != nil {
		return nil, err
	}
	remaining, err := s.store.ReserveSeat(ctx, in.GetCourseId(), in.GetReservationId())
	if err != nil {
		return nil, storeStatus("reserve seat", in.GetCourseId(), err)
	}
	return &coursev1.ReserveSeatResponse{SeatsRemaining: int32(remaining)}, nil
}

// ReleaseSeat returns one seat to a course.
func (s *Service) ReleaseSeat(ctx context.Context, in *coursev1.ReleaseSeatRequest) (*coursev1.ReleaseSeatResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "release seat request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	if err := validateCourseID(in.GetCourseId()); err != nil {
		return nil, err
	}
	remaining, err := s.store.ReleaseSeat(ctx, in.GetCourseId(), in.GetReservationId())
	if err != nil {
		return nil, storeStatus("release seat", in.GetCourseId(), err)
	}
	return &coursev1.ReleaseSeatResponse{SeatsRemaining: int32(remaining)}, nil
}

// AddCourse creates a new open course.
func (s *Service) AddCourse(ctx context.Context, in *coursev1.AddCourseRequest) (*coursev1.AddCourseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "add course request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.GetCode())
	title := strings.TrimSpace(in.GetTitle())
	switch {
	case code == "":
		return nil, apperrors.ToStatus(apperrors.New(apperrors.CodeCourseCodeRequired, "course code is required"))
	case title == "":
		return nil, apperrors.ToStatus(apperrors.New(apperrors.CodeCourseTitleRequired, "course title is required"))
	case in.GetSeats() < 0:
		return nil, apperrors.ToStatus(apperrors.New(apperrors.CodeSeatCountNegative, "seats must not be negative"))
	}

	course, err := s.store.CreateCourse(ctx, storage.Course{Code: code, Title: title, Seats: int(in.GetSeats())})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apperrors.ToStatus(apperrors.WithMetadata(apperrors.CodeCourseCodeTaken, "course code already exists", map[string]string{
				"Code": code,
			}))
		}
		return nil, storeStatus("add course", 0, err)
	}
	return &coursev1.AddCourseResponse{Course: toProto(course)}, nil
}

// CloseCourse stops a course from accepting enrollments.
func (s *Service) CloseCourse(ctx context.Context, in *coursev1.CloseCourseRequest) (*coursev1.CloseCourseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "close course request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	if err := validateCourseID(in.GetCourseId()); err != nil {
		return nil, err
	}
	course, err := s.store.CloseCourse(ctx, in.GetCourseId())
	if err != nil {
		return nil, storeStatus("close course", in.GetCourseId(), err)
	}
	return &coursev1.CloseCourseResponse{Course: toProto(course)}, nil
}

func validateCourseID(id int64) error {
	if id <= 0 {
		return apperrors.ToStatus(apperrors.New(apperrors.CodeCourseIDInvalid, "course id must be positive"))
	}
	return nil
}

// storeStatus maps storage sentinels onto domain codes.
func storeStatus(op string, courseID int64, err error) error {
	metadata := map[string]string{"CourseID": strconv.FormatInt(courseID, 10)}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.ToStatus(apperrors.WithMetadata(apperrors.CodeCourseNotFound, "course not found", metadata))
	case errors.Is(err, storage.ErrCourseClosed):
		return apperrors.ToStatus(apperrors.WithMetadata(apperrors.CodeCourseClosed, "course is closed", metadata))
	case errors.Is(err, storage.ErrNoSeats):
		return apperrors.ToStatus(apperrors.WithMetadata(apperrors.CodeCourseSeatsExhausted, "no seats remaining", metadata))
	case errors.Is(err, storage.ErrReservationReleased), errors.Is(err, storage.ErrReservationMismatch):
		return apperrors.ToStatus(apperrors.WrapWithMetadata(apperrors.CodeSeatReservationAborted, "reservation cannot claim a seat", metadata, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.ToStatus(err)
	}
	return apperrors.ToStatus(apperrors.Wrap(apperrors.CodeStorageFailure, op, err))
}

func toProto(course storage.Course) *coursev1.Course {
	return &coursev1.Course{
		Id:       course.ID,
		Code:     course.Code,
		Title:    course.Title,
		Seats:    int32(course.Seats),
		Capacity: int32(course.Capacity),
		Open:     course.Open,
	}
}
