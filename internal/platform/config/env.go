package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFileVar names the variable that points at an optional dotenv file.
const EnvFileVar = "REGISTRAR_ENV_FILE"

const defaultEnvFile = ".env"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv merges a dotenv file into the process environment.
//
// The path comes from REGISTRAR_ENV_FILE, falling back to ./.env. A missing
// file is not an error, and variables already set in the environment win.
func LoadDotEnv() error {
	path := strings.TrimSpace(os.Getenv(EnvFileVar))
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
