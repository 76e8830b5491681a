// Package errors provides structured domain errors that translate to gRPC
// statuses with machine-readable details.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeStudentIDRequired   Code = "STUDENT_ID_REQUIRED"
	CodeCourseIDInvalid     Code = "COURSE_ID_INVALID"
	CodeEnrollmentIDInvalid Code = "ENROLLMENT_ID_INVALID"
	CodeGradeOutOfRange     Code = "GRADE_OUT_OF_RANGE"
	CodeSeatCountNegative   Code = "SEAT_COUNT_NEGATIVE"
	CodeCourseCodeRequired  Code = "COURSE_CODE_REQUIRED"
	CodeCourseTitleRequired Code = "COURSE_TITLE_REQUIRED"
	CodeSeatStrategyInvalid Code = "SEAT_STRATEGY_INVALID"

	// Enrollment errors
	CodeEnrollmentDuplicate Code = "ENROLLMENT_DUPLICATE"
	CodeEnrollmentNotFound  Code = "ENROLLMENT_NOT_FOUND"
	CodeNoEnrollments       Code = "STUDENT_ENROLLMENTS_NOT_FOUND"

	// Course errors
	CodeCourseNotFound       Code = "COURSE_NOT_FOUND"
	CodeCourseClosed         Code = "COURSE_CLOSED"
	CodeCourseCodeTaken      Code = "COURSE_CODE_TAKEN"
	CodeCourseSeatsExhausted Code = "COURSE_SEATS_EXHAUSTED"

	// Coordination errors
	CodeSeatReservationAborted Code = "SEAT_RESERVATION_ABORTED"
	CodeRegistryUnavailable    Code = "REGISTRY_UNAVAILABLE"

	// Storage errors
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeStudentIDRequired,
		CodeCourseIDInvalid,
		CodeEnrollmentIDInvalid,
		CodeGradeOutOfRange,
		CodeSeatCountNegative,
		CodeCourseCodeRequired,
		CodeCourseTitleRequired,
		CodeSeatStrategyInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCourseClosed:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeCourseNotFound,
		CodeEnrollmentNotFound,
		CodeNoEnrollments:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeEnrollmentDuplicate,
		CodeCourseCodeTaken:
		return codes.AlreadyExists

	// ResourceExhausted - capacity is a business outcome
	case CodeCourseSeatsExhausted:
		return codes.ResourceExhausted

	// Aborted - the registry refused a conditional write
	case CodeSeatReservationAborted:
		return codes.Aborted

	// Unavailable - a dependency could not answer
	case CodeRegistryUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
