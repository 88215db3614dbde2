package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Filenames the case file server keeps for its own bookkeeping. They are
// never downloaded.
var defaultExcludes = []string{".sfdcprefix", ".sfdc-file-listing-v1"}

type Config struct {
	Host       string
	Port       int
	RemoteBase string
	Excludes   []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	port, err := strconv.Atoi(getEnv("SFTP_PORT", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP_PORT: %w", err)
	}

	config := &Config{
		Host:       getEnv("SFTP_HOST", "casefiles.sjc.cloudera.com"),
		Port:       port,
		RemoteBase: getEnv("REMOTE_BASE", "/case"),
		Excludes:   splitList(getEnv("EXCLUDE_NAMES", strings.Join(defaultExcludes, ","))),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
