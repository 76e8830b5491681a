package grpc

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/registrar/internal/platform/grpc/metadata"
	"github.com/louisbranch/registrar/internal/platform/id"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcmetadata "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDUnaryServerInterceptor adopts the caller's request ID, or mints
// one, stores it in the handler context and echoes it in the response header.
func RequestIDUnaryServerInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		requestID := metadata.IncomingRequestID(ctx)
		if requestID == "" {
			generated, err := id.NewID()
			if err != nil {
				log.Printf("generate request id: %v", err)
			}
			requestID = generated
		}
		if requestID != "" {
			ctx = metadata.WithRequestID(ctx, requestID)
			// Fails outside a real transport stream, e.g. direct handler tests.
			_ = gogrpc.SetHeader(ctx, grpcmetadata.Pairs(metadata.RequestIDHeader, requestID))
		}
		return handler(ctx, req)
	}
}

// RequestIDUnaryClientInterceptor forwards the context request ID on outgoing
// calls so downstream logs correlate with the originating request.
func RequestIDUnaryClientInterceptor() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		if requestID := metadata.RequestIDFromContext(ctx); requestID != "" {
			md, _ := grpcmetadata.FromOutgoingContext(ctx)
			if len(md.Get(metadata.RequestIDHeader)) == 0 {
				ctx = grpcmetadata.AppendToOutgoingContext(ctx, metadata.RequestIDHeader, requestID)
			}
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// LoggingUnaryServerInterceptor writes one line per unary call.
func LoggingUnaryServerInterceptor(logf func(string, ...any)) gogrpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		var traceID string
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
		}
		code := status.Code(err)
		elapsed := time.Since(start).Round(time.Microsecond)
		requestID := metadata.RequestIDFromContext(ctx)
		if code == codes.OK {
			logf("grpc %s code=%s duration=%s request_id=%s trace_id=%s", info.FullMethod, code, elapsed, requestID, traceID)
		} else {
			logf("grpc %s code=%s duration=%s request_id=%s trace_id=%s err=%q", info.FullMethod, code, elapsed, requestID, traceID, status.Convert(err).Message())
		}
		return resp, err
	}
}

// ConcurrencyLimitUnaryServerInterceptor bounds in-flight unary handlers.
// Callers wait for a slot until their context ends; a non-positive limit
// disables the bound.
func ConcurrencyLimitUnaryServerInterceptor(limit int64) gogrpc.UnaryServerInterceptor {
	if limit <= 0 {
		return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
			return handler(ctx, req)
		}
	}
	slots := semaphore.NewWeighted(limit)
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if err := slots.Acquire(ctx, 1); err != nil {
			return nil, status.Errorf(codes.Unavailable, "server at capacity: %v", err)
		}
		defer slots.Release(1)
		return handler(ctx, req)
	}
}
