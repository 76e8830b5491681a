// Package enrollment parses enrollment command flags and launches the
// enrollment runtime.
package enrollment

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/louisbranch/registrar/internal/platform/discovery"
	server "github.com/louisbranch/registrar/internal/services/enrollment/app"
	"github.com/louisbranch/registrar/internal/services/enrollment/domain"
)

// Config holds enrollment command configuration.
type Config struct {
	Port                  int           `env:"REGISTRAR_ENROLLMENT_PORT" envDefault:"8102"`
	DBPath                string        `env:"REGISTRAR_ENROLLMENT_DB_PATH"`
	CourseAddr            string        `env:"REGISTRAR_ENROLLMENT_COURSE_ADDR"`
	SeatStrategy          string        `env:"REGISTRAR_ENROLLMENT_SEAT_STRATEGY" envDefault:"atomic"`
	RegistryTimeout       time.Duration `env:"REGISTRAR_ENROLLMENT_REGISTRY_TIMEOUT" envDefault:"2s"`
	MaxConcurrentRequests int           `env:"REGISTRAR_ENROLLMENT_MAX_CONCURRENT_REQUESTS" envDefault:"10"`
	GRPCDialTimeout       time.Duration `env:"REGISTRAR_ENROLLMENT_DIAL_TIMEOUT" envDefault:"2s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CourseAddr = discovery.OrDefaultGRPCAddr(cfg.CourseAddr, discovery.ServiceCourse)

	fs.IntVar(&cfg.Port, "port", cfg.Port, "The enrollment gRPC server port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The enrollment SQLite database path")
	fs.StringVar(&cfg.CourseAddr, "course-addr", cfg.CourseAddr, "The course registry gRPC server address")
	fs.StringVar(&cfg.SeatStrategy, "seat-strategy", cfg.SeatStrategy, "How seats are claimed: atomic, serialized or snapshot")
	fs.DurationVar(&cfg.RegistryTimeout, "registry-timeout", cfg.RegistryTimeout, "The per-call course registry timeout")
	fs.IntVar(&cfg.MaxConcurrentRequests, "max-concurrent-requests", cfg.MaxConcurrentRequests, "The in-flight request limit")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "The gRPC dependency dial timeout")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := domain.ParseSeatStrategy(cfg.SeatStrategy); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the enrollment runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEnrollment, func(context.Context) error {
		return server.Run(ctx, server.RuntimeConfig{
			Port:                  cfg.Port,
			DBPath:                cfg.DBPath,
			CourseAddr:            cfg.CourseAddr,
			SeatStrategy:          cfg.SeatStrategy,
			RegistryTimeout:       cfg.RegistryTimeout,
			MaxConcurrentRequests: cfg.MaxConcurrentRequests,
			GRPCDialTimeout:       cfg.GRPCDialTimeout,
		})
	})
}
