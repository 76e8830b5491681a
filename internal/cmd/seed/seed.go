// Package seed loads the sample course catalog into a running course registry.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/louisbranch/registrar/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config holds seed command configuration.
type Config struct {
	CourseAddr  string        `env:"REGISTRAR_SEED_COURSE_ADDR"`
	DialTimeout time.Duration `env:"REGISTRAR_SEED_DIAL_TIMEOUT" envDefault:"10s"`
	Verbose     bool          `env:"REGISTRAR_SEED_VERBOSE"`
}

// Course is one catalog entry to add.
type Course struct {
	Code  string
	Title string
	Seats int32
}

// SampleCourses is the development catalog.
var SampleCourses = []Course{
	{Code: "CS101", Title: "Introduction to Computer Science", Seats: 30},
	{Code: "CS201", Title: "Data Structures and Algorithms", Seats: 25},
	{Code: "MATH101", Title: "Calculus I", Seats: 40},
	{Code: "PHYS101", Title: "Physics I", Seats: 35},
	{Code: "ENG101", Title: "English Composition", Seats: 20},
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CourseAddr = discovery.OrDefaultGRPCAddr(cfg.CourseAddr, discovery.ServiceCourse)

	fs.StringVar(&cfg.CourseAddr, "course-addr", cfg.CourseAddr, "course registry address")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "how long to wait for the course registry")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run dials the course registry and adds SampleCourses.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = timeouts.GRPCDial
	}
	var logf func(string, ...any)
	if cfg.Verbose {
		logf = func(format string, args ...any) { fmt.Fprintf(out, format+"\n", args...) }
	}

	conn, err := platformgrpc.DialWithHealth(ctx, nil, cfg.CourseAddr, coursev1.ServiceName, cfg.DialTimeout, logf, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return fmt.Errorf("dial course service: %w", err)
	}
	defer conn.Close()

	added, skipped, err := AddCourses(ctx, coursev1.NewCourseServiceClient(conn), SampleCourses, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d courses (%d already present).\n", added, skipped)
	return nil
}

// courseAdder is the part of the course client the seeder uses.
type courseAdder interface {
	AddCourse(ctx context.Context, in *coursev1.AddCourseRequest, opts ...grpc.CallOption) (*coursev1.AddCourseResponse, error)
}

// AddCourses adds each course, skipping codes the registry already has. It
// stops at the first other failure.
func AddCourses(ctx context.Context, client courseAdder, courses []Course, out io.Writer) (added, skipped int, err error) {
	if out == nil {
		out = io.Discard
	}
	for _, course := range courses {
		resp, err := client.AddCourse(ctx, &coursev1.AddCourseRequest{Code: course.Code, Title: course.Title, Seats: course.Seats})
		if status.Code(err) == codes.AlreadyExists {
			fmt.Fprintf(out, "  %s already exists, skipping\n", course.Code)
			skipped++
			continue
		}
		if err != nil {
			return added, skipped, fmt.Errorf("add course %s: %w", course.Code, err)
		}
		fmt.Fprintf(out, "  added %s (id %d, %d seats)\n", course.Code, resp.GetCourse().GetId(), resp.GetCourse().GetSeats())
		added++
	}
	return added, skipped, nil
}
