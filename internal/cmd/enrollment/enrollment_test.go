package enrollment

import (
	"flag"
	"testing"
	"time"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("enrollment", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8102 {
		t.Fatalf("port = %d, want 8102", cfg.Port)
	}
	if cfg.CourseAddr != "course:8101" {
		t.Fatalf("course_addr = %q, want %q", cfg.CourseAddr, "course:8101")
	}
	if cfg.SeatStrategy != "atomic" {
		t.Fatalf("seat_strategy = %q, want atomic", cfg.SeatStrategy)
	}
	if cfg.RegistryTimeout != 2*time.Second {
		t.Fatalf("registry_timeout = %s, want %s", cfg.RegistryTimeout, 2*time.Second)
	}
	if cfg.MaxConcurrentRequests != 10 {
		t.Fatalf("max_concurrent_requests = %d, want 10", cfg.MaxConcurrentRequests)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("REGISTRAR_ENROLLMENT_PORT", "9000")
	t.Setenv("REGISTRAR_ENROLLMENT_COURSE_ADDR", "custom-course:19000")

	fs := flag.NewFlagSet("enrollment", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-port", "9001",
		"-seat-strategy", "serialized",
		"-registry-timeout", "500ms",
		"-db-path", "/tmp/enrollment.db",
		"-dial-timeout", "3s",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("port = %d, want 9001", cfg.Port)
	}
	if cfg.CourseAddr != "custom-course:19000" {
		t.Fatalf("course_addr = %q, want %q", cfg.CourseAddr, "custom-course:19000")
	}
	if cfg.SeatStrategy != "serialized" {
		t.Fatalf("seat_strategy = %q, want serialized", cfg.SeatStrategy)
	}
	if cfg.RegistryTimeout != 500*time.Millisecond {
		t.Fatalf("registry_timeout = %s, want 500ms", cfg.RegistryTimeout)
	}
	if cfg.DBPath != "/tmp/enrollment.db" {
		t.Fatalf("db_path = %q", cfg.DBPath)
	}
	if cfg.GRPCDialTimeout != 3*time.Second {
		t.Fatalf("dial_timeout = %s, want 3s", cfg.GRPCDialTimeout)
	}
}

func TestParseConfigRejectsUnknownStrategy(t *testing.T) {
	fs := flag.NewFlagSet("enrollment", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-seat-strategy", "optimistic"})
	if got := apperrors.CodeOf(err); got != apperrors.CodeSeatStrategyInvalid {
		t.Fatalf("code = %s, want %s (err: %v)", got, apperrors.CodeSeatStrategyInvalid, err)
	}
}
