package course

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("course", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8101 {
		t.Fatalf("expected default port 8101, got %d", cfg.Port)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("REGISTRAR_COURSE_PORT", "9000")

	fs := flag.NewFlagSet("course", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected env port 9000, got %d", cfg.Port)
	}

	fs = flag.NewFlagSet("course", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-port", "9001"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected flag port 9001, got %d", cfg.Port)
	}
}
