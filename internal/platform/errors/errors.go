package errors

import (
	"context"
	stderrors "errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the error domain for registrar errors.
const Domain = "github.com/louisbranch/registrar"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for message templates
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata for message templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// CodeOf returns the domain code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// ToGRPCStatus converts the error to a gRPC status with errdetails.
// The status message contains the internal message for logging.
// The LocalizedMessage contains the user-facing message.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	grpcCode := e.Code.GRPCCode()
	st := status.New(grpcCode, e.Message)

	detailed, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ToStatus converts any handler error to a gRPC status error. Domain errors
// carry their details, existing statuses pass through, context errors keep
// their meaning and anything else becomes Internal.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.ToGRPCStatus(DefaultLocale, FormatMessage(domainErr.Code, domainErr.Metadata))
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
