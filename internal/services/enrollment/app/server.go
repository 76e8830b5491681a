// Package server wires the enrollment coordinator runtime, its course
// registry dependency and the gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	enrollmentv1 "github.com/louisbranch/registrar/api/enrollment/v1"
	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	enrollmentservice "github.com/louisbranch/registrar/internal/services/enrollment/api/grpc/enrollment"
	"github.com/louisbranch/registrar/internal/services/enrollment/domain"
	"github.com/louisbranch/registrar/internal/services/enrollment/registry"
	enrollmentsqlite "github.com/louisbranch/registrar/internal/services/enrollment/storage/sqlite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const (
	defaultPort                  = 8102
	defaultMaxConcurrentRequests = 10
)

// RuntimeConfig controls enrollment service startup and dependency wiring.
type RuntimeConfig struct {
	Port int
	// Addr overrides Port with a full listen address.
	Addr                  string
	DBPath                string
	CourseAddr            string
	SeatStrategy          string
	RegistryTimeout       time.Duration
	MaxConcurrentRequests int
	GRPCDialTimeout       time.Duration
}

func (cfg RuntimeConfig) withDefaults() (RuntimeConfig, error) {
	if strings.TrimSpace(cfg.CourseAddr) == "" {
		return RuntimeConfig{}, errors.New("course address is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "enrollment.db")
	}
	if cfg.RegistryTimeout <= 0 {
		cfg.RegistryTimeout = timeouts.RegistryCall
	}
	if cfg.MaxConcurrentRequests <= 0 {
		cfg.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}
	return cfg, nil
}

// Server hosts the enrollment gRPC API, its store and the course registry
// connection.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *enrollmentsqlite.Store
	courseConn *grpc.ClientConn
}

// New dials the course registry, opens storage and builds the gRPC server.
// The course registry must report SERVING before New returns.
func New(ctx context.Context, cfg RuntimeConfig) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	strategy, err := domain.ParseSeatStrategy(cfg.SeatStrategy)
	if err != nil {
		return nil, err
	}

	courseConn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		cfg.CourseAddr,
		coursev1.ServiceName,
		cfg.GRPCDialTimeout,
		log.Printf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		return nil, fmt.Errorf("dial course service: %w", err)
	}

	store, err := openEnrollmentStore(cfg.DBPath)
	if err != nil {
		_ = courseConn.Close()
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		_ = courseConn.Close()
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	courses := registry.NewClient(coursev1.NewCourseServiceClient(courseConn), cfg.RegistryTimeout)
	coordinator := domain.NewCoordinator(store, courses, domain.Config{SeatStrategy: strategy})

	grpcServer := platformgrpc.NewServer(platformgrpc.ServerConfig{MaxConcurrentRequests: cfg.MaxConcurrentRequests})
	enrollmentv1.RegisterEnrollmentServiceServer(grpcServer, enrollmentservice.NewService(coordinator))
	healthServer := platformgrpc.RegisterHealth(grpcServer, enrollmentv1.ServiceName)

	log.Printf("enrollment seat strategy: %s", coordinator.Strategy())
	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		courseConn: courseConn,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves an enrollment server until context cancellation.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	defer s.Close()

	log.Printf("enrollment server listening at %v", s.listener.Addr())
	return platformgrpc.Serve(ctx, s.grpcServer, s.listener, s.health)
}

// Close releases enrollment server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.courseConn != nil {
		if err := s.courseConn.Close(); err != nil {
			log.Printf("close course connection: %v", err)
		}
		s.courseConn = nil
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close enrollment store: %v", err)
		}
		s.store = nil
	}
}

func openEnrollmentStore(path string) (*enrollmentsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := enrollmentsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open enrollment sqlite store: %w", err)
	}
	return store, nil
}
