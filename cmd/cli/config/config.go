package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:5000"
	tokenFileName = ".sidelines_token"
)

// ErrNoToken is returned by LoadToken when nobody is logged in.
var ErrNoToken = errors.New("not logged in: run `sidelines login` first")

// APIURL returns the base URL for the Sidelines API.
// It can be overridden with the SIDELINES_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("SIDELINES_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is where the JWT from the last login is kept.
// SIDELINES_TOKEN_FILE overrides the default of ~/.sidelines_token.
func TokenPath() (string, error) {
	if v := os.Getenv("SIDELINES_TOKEN_FILE"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

// ==========================
// Token Storage
// ==========================

func SaveToken(token string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func LoadToken() (string, error) {
	path, err := TokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// ClearToken removes the stored token. Removing a missing file is not an error.
func ClearToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
