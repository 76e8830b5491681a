// Package enrollment exposes the enrollment coordinator over gRPC.
package enrollment

import (
	"context"
	"strings"

	enrollmentv1 "github.com/louisbranch/registrar/api/enrollment/v1"
	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	grpcmeta "github.com/louisbranch/registrar/internal/platform/grpc/metadata"
	"github.com/louisbranch/registrar/internal/services/enrollment/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Coordinator is the domain surface the transport needs.
type Coordinator interface {
	Enroll(ctx context.Context, in domain.EnrollInput) (domain.EnrollResult, error)
	UploadGrade(ctx context.Context, in domain.UploadGradeInput) (domain.UploadGradeResult, error)
	ViewGrades(ctx context.Context, studentID string) ([]domain.GradeRecord, error)
}

// Service exposes enrollment.v1 gRPC operations.
type Service struct {
	enrollmentv1.UnimplementedEnrollmentServiceServer
	coordinator Coordinator
}

// NewService creates an enrollment service backed by a coordinator.
func NewService(coordinator Coordinator) *Service {
	return &Service{coordinator: coordinator}
}

func (s *Service) configured() error {
	if s == nil || s.coordinator == nil {
		return status.Error(codes.Internal, "enrollment coordinator is not configured")
	}
	return nil
}

// Enroll registers a student in a course.
func (s *Service) Enroll(ctx context.Context, in *enrollmentv1.EnrollRequest) (*enrollmentv1.EnrollResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "enroll request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	result, err := s.coordinator.Enroll(ctx, domain.EnrollInput{
		StudentID: in.GetStudentId(),
		CourseID:  in.GetCourseId(),
	})
	if err != nil {
		return nil, apperrors.ToStatus(err)
	}
	return &enrollmentv1.EnrollResponse{
		EnrollmentId:   result.EnrollmentID,
		SeatsRemaining: int32(result.SeatsRemaining),
		Message:        result.Message,
	}, nil
}

// UploadGrade records a grade for one enrollment. The faculty id falls back
// to the caller identity header when the request leaves it blank.
func (s *Service) UploadGrade(ctx context.Context, in *enrollmentv1.UploadGradeRequest) (*enrollmentv1.UploadGradeResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "upload grade request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	facultyID := strings.TrimSpace(in.GetFacultyId())
	if facultyID == "" {
		facultyID = grpcmeta.UserIDFromContext(ctx)
	}
	result, err := s.coordinator.UploadGrade(ctx, domain.UploadGradeInput{
		EnrollmentID: in.GetEnrollmentId(),
		FacultyID:    facultyID,
		Grade:        in.GetGrade(),
	})
	if err != nil {
		return nil, apperrors.ToStatus(err)
	}
	return &enrollmentv1.UploadGradeResponse{
		UpdatedGrade:       result.Grade,
		Record:             toProto(result.Record),
		Message:            result.Message,
		EnrichmentDegraded: result.EnrichmentDegraded,
	}, nil
}

// ViewGrades lists a student's enrollments with course details.
func (s *Service) ViewGrades(ctx context.Context, in *enrollmentv1.ViewGradesRequest) (*enrollmentv1.ViewGradesResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "view grades request is required")
	}
	if err := s.configured(); err != nil {
		return nil, err
	}
	records, err := s.coordinator.ViewGrades(ctx, in.GetStudentId())
	if err != nil {
		return nil, apperrors.ToStatus(err)
	}
	resp := &enrollmentv1.ViewGradesResponse{Records: make([]*enrollmentv1.GradeRecord, 0, len(records))}
	for _, record := range records {
		resp.Records = append(resp.Records, toProto(record))
	}
	return resp, nil
}

func toProto(record domain.GradeRecord) *enrollmentv1.GradeRecord {
	out := &enrollmentv1.GradeRecord{
		EnrollmentId: record.EnrollmentID,
		CourseId:     record.CourseID,
		CourseCode:   record.CourseCode,
		CourseTitle:  record.CourseTitle,
		StudentId:    record.StudentID,
		Status:       string(record.Status),
	}
	if record.Grade != nil {
		out.Grade = *record.Grade
		out.Graded = true
	}
	return out
}
