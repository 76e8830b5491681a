package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"REGISTRAR_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("REGISTRAR_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvMergesWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "REGISTRAR_TEST_PORT=456\nREGISTRAR_TEST_DOTENV_ONLY=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvFileVar, path)
	t.Setenv("REGISTRAR_TEST_PORT", "789")
	t.Setenv("REGISTRAR_TEST_DOTENV_ONLY", "")
	os.Unsetenv("REGISTRAR_TEST_DOTENV_ONLY")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("REGISTRAR_TEST_DOTENV_ONLY"); got != "from-file" {
		t.Fatalf("dotenv value = %q, want from-file", got)
	}

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 789 {
		t.Fatalf("expected existing env to win, got %d", cfg.Port)
	}
}

func TestLoadDotEnvIgnoresMissingDefaultFile(t *testing.T) {
	t.Setenv(EnvFileVar, "")
	t.Chdir(t.TempDir())

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("expected missing default file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvRejectsMissingExplicitFile(t *testing.T) {
	t.Setenv(EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))

	if err := LoadDotEnv(); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}
