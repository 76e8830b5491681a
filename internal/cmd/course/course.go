// Package course parses course registry flags and launches the service.
package course

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	server "github.com/louisbranch/registrar/internal/services/course/app"
)

// Config holds course command configuration.
type Config struct {
	Port int `env:"REGISTRAR_COURSE_PORT" envDefault:"8101"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The course registry gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the course registry gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCourse, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
