package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/registrar/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself.
func TestExitfWritesStderrAndExits(t *testing.T) {
	if os.Getenv("REGISTRAR_EXITF_SUBPROCESS") == "1" {
		config.Exitf("parse flags: %s", "bad -course-addr")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfWritesStderrAndExits$")
	cmd.Env = append(os.Environ(), "REGISTRAR_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "parse flags: bad -course-addr") {
		t.Fatalf("expected stderr to contain the message, got %q", string(out))
	}
}
