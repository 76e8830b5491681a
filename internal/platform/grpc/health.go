package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	protocodec "google.golang.org/grpc/encoding/proto"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	healthBackoffStart = 100 * time.Millisecond
	healthBackoffMax   = time.Second
)

// RegisterHealth attaches a health server to srv and marks the overall server
// plus each named service as SERVING.
func RegisterHealth(srv *gogrpc.Server, services ...string) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, service := range services {
		healthServer.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return healthServer
}

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Health messages are protobuf; override the JSON default call codec.
	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := healthBackoffStart
	for {
		callCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service}, gogrpc.CallContentSubtype(protocodec.Name))
		cancel()
		if err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("gRPC health check for %q is SERVING", service)
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("waiting for gRPC health %q: %v", service, err)
			} else {
				logf("waiting for gRPC health %q: status %s", service, response.GetStatus().String())
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, healthBackoffMax)
	}
}
