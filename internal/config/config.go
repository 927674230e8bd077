// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// StorageConfig locates the JSON documents and rendered PDFs.
type StorageConfig struct {
	DataDir   string
	OutputDir string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev            bool
	OpenViewer     bool
	OpenBrowser    bool
	CompanyProfile string // optional YAML file overriding the built-in profile
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// URL returns the address the UI is reachable at.
func (s ServerConfig) URL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + host + ":" + s.Port + "/"
}

// DefaultDataDir is ~/.BlackZeroInvoicer, or a relative directory of the same
// name when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".BlackZeroInvoicer"
	}
	return filepath.Join(home, ".BlackZeroInvoicer")
}

// Load reads configuration from environment variables.
// It uses sensible defaults for a local single-user install.
func Load() *Config {
	dataDir := expandHome(getEnv("DATA_DIR", DefaultDataDir()))
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("HOST", "127.0.0.1"),
			Port:         getEnv("PORT", "5055"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Storage: StorageConfig{
			DataDir:   dataDir,
			OutputDir: expandHome(getEnv("OUTPUT_DIR", filepath.Join(dataDir, "pdf"))),
		},
		App: AppConfig{
			Dev:            getEnvBool("DEV", false),
			OpenViewer:     getEnvBool("OPEN_VIEWER", true),
			OpenBrowser:    getEnvBool("OPEN_BROWSER", true),
			CompanyProfile: expandHome(getEnv("COMPANY_PROFILE", "")),
		},
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "1" || value == "true" || value == "yes"
}
