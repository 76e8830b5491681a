package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/louisbranch/registrar/internal/platform/timeouts"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ServerConfig controls the shared gRPC server setup.
type ServerConfig struct {
	// MaxConcurrentRequests bounds in-flight unary handlers; zero means unbounded.
	MaxConcurrentRequests int
	// Logf receives one line per call; defaults to log.Printf.
	Logf func(string, ...any)
}

// NewServer builds a gRPC server with tracing, request IDs, call logging and
// the concurrency bound applied in that order.
func NewServer(cfg ServerConfig, extra ...gogrpc.ServerOption) *gogrpc.Server {
	opts := []gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
		gogrpc.ChainUnaryInterceptor(
			RequestIDUnaryServerInterceptor(),
			LoggingUnaryServerInterceptor(cfg.Logf),
			ConcurrencyLimitUnaryServerInterceptor(int64(cfg.MaxConcurrentRequests)),
		),
	}
	if cfg.MaxConcurrentRequests > 0 {
		opts = append(opts, gogrpc.NumStreamWorkers(uint32(cfg.MaxConcurrentRequests)))
	}
	return gogrpc.NewServer(append(opts, extra...)...)
}

// Serve runs srv on listener until ctx ends or serving fails. On
// cancellation the health server flips to NOT_SERVING and in-flight calls get
// timeouts.Shutdown to drain before the server is stopped hard.
func Serve(ctx context.Context, srv *gogrpc.Server, listener net.Listener, healthServer *health.Server) error {
	if srv == nil || listener == nil {
		return errors.New("server and listener are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		if healthServer != nil {
			healthServer.Shutdown()
		}
		stopGracefully(srv, timeouts.Shutdown)
		return normalizeServeError(<-serveErr)
	case err := <-serveErr:
		if healthServer != nil {
			healthServer.Shutdown()
		}
		return normalizeServeError(err)
	}
}

func stopGracefully(srv *gogrpc.Server, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("graceful stop exceeded %s, forcing stop", timeout)
		srv.Stop()
		<-done
	}
}

func normalizeServeError(err error) error {
	if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}
