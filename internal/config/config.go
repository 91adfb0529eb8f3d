// Package config resolves the run configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/readme-streak/internal/domain"
)

const (
	// DefaultEndpoint is GitHub's GraphQL endpoint.
	DefaultEndpoint = "https://api.github.com/graphql"
	// DefaultReadmePath is the file patched when --readme is not given.
	DefaultReadmePath = "README.md"
	// StartMarker and EndMarker delimit the region owned by this tool.
	StartMarker = "<!-- STREAK:START -->"
	EndMarker   = "<!-- STREAK:END -->"

	tokenEnv = "GITHUB_TOKEN"
)

// Config holds every value a run needs. Nothing is read from globals after Load.
type Config struct {
	Token       string
	Endpoint    string
	RESTBaseURL string // empty means go-github's default
	ReadmePath  string
	StartMarker string
	EndMarker   string
}

// LoadDotEnv loads a .env file if one exists. Variables already set win.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env file: %w", err)
}

// Load builds a Config from getenv, failing with a ConfigError when the token is absent.
func Load(getenv func(string) string) (*Config, error) {
	token := strings.TrimSpace(getenv(tokenEnv))
	if token == "" {
		return nil, &domain.ConfigError{Message: tokenEnv + " environment variable is not set"}
	}
	return &Config{
		Token:       token,
		Endpoint:    DefaultEndpoint,
		ReadmePath:  DefaultReadmePath,
		StartMarker: StartMarker,
		EndMarker:   EndMarker,
	}, nil
}
