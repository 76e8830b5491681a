package enrollment

import (
	"context"
	"errors"
	"testing"

	enrollmentv1 "github.com/louisbranch/registrar/api/enrollment/v1"
	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	grpcmeta "github.com/louisbranch/registrar/internal/platform/grpc/metadata"
	"github.com/louisbranch/registrar/internal/services/enrollment/domain"
	"github.com/louisbranch/registrar/internal/services/enrollment/storage"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fakeCoordinator struct {
	enrollIn  domain.EnrollInput
	enrollOut domain.EnrollResult
	enrollErr error

	gradeIn  domain.UploadGradeInput
	gradeOut domain.UploadGradeResult
	gradeErr error

	viewStudent string
	viewOut     []domain.GradeRecord
	viewErr     error
}

func (f *fakeCoordinator) Enroll(_ context.Context, in domain.EnrollInput) (domain.EnrollResult, error) {
	f.enrollIn = in
	return f.enrollOut, f.enrollErr
}

func (f *fakeCoordinator) UploadGrade(_ context.Context, in domain.UploadGradeInput) (domain.UploadGradeResult, error) {
	f.gradeIn = in
	return f.gradeOut, f.gradeErr
}

func (f *fakeCoordinator) ViewGrades(_ context.Context, studentID string) ([]domain.GradeRecord, error) {
	f.viewStudent = studentID
	return f.viewOut, f.viewErr
}

func reasonOf(err error) string {
	for _, detail := range status.Convert(err).Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func TestEnroll_MapsResult(t *testing.T) {
	coordinator := &fakeCoordinator{enrollOut: domain.EnrollResult{EnrollmentID: 7, SeatsRemaining: 29, Message: "ok"}}
	svc := NewService(coordinator)

	resp, err := svc.Enroll(context.Background(), &enrollmentv1.EnrollRequest{StudentId: "s1", CourseId: 1})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if resp.GetEnrollmentId() != 7 || resp.GetSeatsRemaining() != 29 || resp.GetMessage() != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if coordinator.enrollIn != (domain.EnrollInput{StudentID: "s1", CourseID: 1}) {
		t.Fatalf("unexpected input: %+v", coordinator.enrollIn)
	}
}

func TestEnroll_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want codes.Code
	}{
		{apperrors.CodeStudentIDRequired, codes.InvalidArgument},
		{apperrors.CodeEnrollmentDuplicate, codes.AlreadyExists},
		{apperrors.CodeCourseNotFound, codes.NotFound},
		{apperrors.CodeCourseSeatsExhausted, codes.ResourceExhausted},
		{apperrors.CodeSeatReservationAborted, codes.Aborted},
		{apperrors.CodeRegistryUnavailable, codes.Unavailable},
		{apperrors.CodeStorageFailure, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			svc := NewService(&fakeCoordinator{enrollErr: apperrors.New(tt.code, "failed")})
			_, err := svc.Enroll(context.Background(), &enrollmentv1.EnrollRequest{StudentId: "s1", CourseId: 1})
			if status.Code(err) != tt.want {
				t.Fatalf("code = %v, want %v", status.Code(err), tt.want)
			}
			if reasonOf(err) != string(tt.code) {
				t.Fatalf("reason = %q, want %q", reasonOf(err), tt.code)
			}
		})
	}
}

func TestEnroll_UnknownErrorIsInternal(t *testing.T) {
	svc := NewService(&fakeCoordinator{enrollErr: errors.New("boom")})
	_, err := svc.Enroll(context.Background(), &enrollmentv1.EnrollRequest{StudentId: "s1", CourseId: 1})
	if status.Code(err) != codes.Internal {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Internal)
	}
}

func TestNilRequestsAreInvalid(t *testing.T) {
	svc := NewService(&fakeCoordinator{})
	if _, err := svc.Enroll(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("enroll code = %v", status.Code(err))
	}
	if _, err := svc.UploadGrade(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("upload code = %v", status.Code(err))
	}
	if _, err := svc.ViewGrades(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("view code = %v", status.Code(err))
	}
}

func TestNilCoordinatorIsInternal(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ViewGrades(context.Background(), &enrollmentv1.ViewGradesRequest{StudentId: "s1"}); status.Code(err) != codes.Internal {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Internal)
	}
}

func TestUploadGrade_MapsRecord(t *testing.T) {
	grade := 3.5
	coordinator := &fakeCoordinator{gradeOut: domain.UploadGradeResult{
		Grade: grade,
		Record: domain.GradeRecord{
			EnrollmentID: 42, CourseID: 5, CourseCode: domain.UnknownCourseCode, CourseTitle: domain.UnknownCourseTitle,
			StudentID: "s1", Grade: &grade, Status: storage.StatusCompleted,
		},
		Message:            "Grade 3.5 uploaded successfully for enrollment 42.",
		EnrichmentDegraded: true,
	}}
	svc := NewService(coordinator)

	resp, err := svc.UploadGrade(context.Background(), &enrollmentv1.UploadGradeRequest{EnrollmentId: 42, FacultyId: "f1", Grade: grade})
	if err != nil {
		t.Fatalf("upload grade: %v", err)
	}
	if resp.GetUpdatedGrade() != 3.5 || !resp.GetEnrichmentDegraded() {
		t.Fatalf("unexpected response: %+v", resp)
	}
	record := resp.GetRecord()
	if !record.GetGraded() || record.GetGrade() != 3.5 || record.GetStatus() != "COMPLETED" || record.GetCourseCode() != "UNKNOWN" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if coordinator.gradeIn.FacultyID != "f1" {
		t.Fatalf("faculty id = %q, want f1", coordinator.gradeIn.FacultyID)
	}
}

func TestUploadGrade_FacultyFromMetadata(t *testing.T) {
	coordinator := &fakeCoordinator{}
	svc := NewService(coordinator)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(grpcmeta.UserIDHeader, "prof-7"))

	if _, err := svc.UploadGrade(ctx, &enrollmentv1.UploadGradeRequest{EnrollmentId: 1, Grade: 2}); err != nil {
		t.Fatalf("upload grade: %v", err)
	}
	if coordinator.gradeIn.FacultyID != "prof-7" {
		t.Fatalf("faculty id = %q, want prof-7", coordinator.gradeIn.FacultyID)
	}
}

func TestUploadGrade_OutOfRangeIsInvalidArgument(t *testing.T) {
	svc := NewService(&fakeCoordinator{gradeErr: apperrors.New(apperrors.CodeGradeOutOfRange, "grade out of range")})
	_, err := svc.UploadGrade(context.Background(), &enrollmentv1.UploadGradeRequest{EnrollmentId: 1, Grade: 4.5})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestViewGrades_UngradedRecords(t *testing.T) {
	coordinator := &fakeCoordinator{viewOut: []domain.GradeRecord{
		{EnrollmentID: 1, CourseID: 1, CourseCode: "CS101", StudentID: "s1", Status: storage.StatusEnrolled},
	}}
	svc := NewService(coordinator)

	resp, err := svc.ViewGrades(context.Background(), &enrollmentv1.ViewGradesRequest{StudentId: "s1"})
	if err != nil {
		t.Fatalf("view grades: %v", err)
	}
	if len(resp.GetRecords()) != 1 {
		t.Fatalf("records = %d, want 1", len(resp.GetRecords()))
	}
	if record := resp.GetRecords()[0]; record.GetGraded() || record.GetGrade() != 0 || record.GetStatus() != "ENROLLED" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if coordinator.viewStudent != "s1" {
		t.Fatalf("student = %q, want s1", coordinator.viewStudent)
	}
}

func TestViewGrades_NoEnrollmentsIsNotFound(t *testing.T) {
	svc := NewService(&fakeCoordinator{viewErr: apperrors.New(apperrors.CodeNoEnrollments, "student has no enrollments")})
	_, err := svc.ViewGrades(context.Background(), &enrollmentv1.ViewGradesRequest{StudentId: "ghost"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.NotFound)
	}
}
