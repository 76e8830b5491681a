// Package metadata defines the cross-service headers that keep request
// context stable across gRPC boundaries.
package metadata

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-registrar-request-id"

// UserIDHeader is the gRPC metadata key for the authenticated caller, set by
// the gateway after it has verified the caller's credentials.
const UserIDHeader = "x-registrar-user-id"

type contextKey string

const requestIDContextKey contextKey = "registrar-request-id"

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// IncomingRequestID returns the request ID sent by the caller, if any.
func IncomingRequestID(ctx context.Context) string {
	return incomingValue(ctx, RequestIDHeader)
}

// UserIDFromContext returns the caller user ID from incoming metadata.
func UserIDFromContext(ctx context.Context) string {
	return incomingValue(ctx, UserIDHeader)
}

func incomingValue(ctx context.Context, key string) string {
	if ctx == nil {
		return ""
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, value := range md.Get(key) {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
