// Package server wires the course registry runtime and gRPC lifecycle.
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

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	"github.com/louisbranch/registrar/internal/platform/config"
	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	courseservice "github.com/louisbranch/registrar/internal/services/course/api/grpc/course"
	coursesqlite "github.com/louisbranch/registrar/internal/services/course/storage/sqlite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type serverEnv struct {
	DBPath                string `env:"REGISTRAR_COURSE_DB_PATH"`
	MaxConcurrentRequests int    `env:"REGISTRAR_COURSE_MAX_CONCURRENT_REQUESTS" envDefault:"10"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "course.db")
	}
	return cfg, nil
}

// Server hosts the course gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *coursesqlite.Store
}

// New creates a configured course server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured course server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openCourseStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := platformgrpc.NewServer(platformgrpc.ServerConfig{MaxConcurrentRequests: env.MaxConcurrentRequests})
	coursev1.RegisterCourseServiceServer(grpcServer, courseservice.NewService(store))
	healthServer := platformgrpc.RegisterHealth(grpcServer, coursev1.ServiceName)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a course server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
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

	log.Printf("course server listening at %v", s.listener.Addr())
	return platformgrpc.Serve(ctx, s.grpcServer, s.listener, s.health)
}

// Close releases course server resources.
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
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close course store: %v", err)
		}
		s.store = nil
	}
}

func openCourseStore(path string) (*coursesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := coursesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course sqlite store: %w", err)
	}
	return store, nil
}
