package config

import (
	"os"
	"testing"
)

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test_value")
	defer os.Unsetenv("TEST_VAR")

	result := getEnv("TEST_VAR", "default_value")
	if result != "test_value" {
		t.Errorf("getEnv() = %s, want %s", result, "test_value")
	}

	result = getEnv("NON_EXISTENT_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}

	os.Setenv("EMPTY_VAR", "")
	defer os.Unsetenv("EMPTY_VAR")

	result = getEnv("EMPTY_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}
}

func TestLoad(t *testing.T) {
	originalVars := map[string]string{
		"SFTP_HOST":     os.Getenv("SFTP_HOST"),
		"SFTP_PORT":     os.Getenv("SFTP_PORT"),
		"REMOTE_BASE":   os.Getenv("REMOTE_BASE"),
		"EXCLUDE_NAMES": os.Getenv("EXCLUDE_NAMES"),
	}

	defer func() {
		for key, value := range originalVars {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
	}()

	testVars := map[string]string{
		"SFTP_HOST":     "sftp.example.com",
		"SFTP_PORT":     "2222",
		"REMOTE_BASE":   "/uploads",
		"EXCLUDE_NAMES": ".hidden, .listing",
	}

	for key, value := range testVars {
		os.Setenv(key, value)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Host != testVars["SFTP_HOST"] {
		t.Errorf("config.Host = %s, want %s", config.Host, testVars["SFTP_HOST"])
	}

	if config.Port != 2222 {
		t.Errorf("config.Port = %d, want %d", config.Port, 2222)
	}

	if config.RemoteBase != testVars["REMOTE_BASE"] {
		t.Errorf("config.RemoteBase = %s, want %s", config.RemoteBase, testVars["REMOTE_BASE"])
	}

	if len(config.Excludes) != 2 || config.Excludes[0] != ".hidden" || config.Excludes[1] != ".listing" {
		t.Errorf("config.Excludes = %v, want %v", config.Excludes, []string{".hidden", ".listing"})
	}

	for key := range testVars {
		os.Unsetenv(key)
	}

	config, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Host != "casefiles.sjc.cloudera.com" {
		t.Errorf("config.Host = %s, want default host", config.Host)
	}

	if config.Port != 22 {
		t.Errorf("config.Port = %d, want %d", config.Port, 22)
	}

	if config.RemoteBase != "/case" {
		t.Errorf("config.RemoteBase = %s, want %s", config.RemoteBase, "/case")
	}

	if len(config.Excludes) != 2 || config.Excludes[0] != ".sfdcprefix" || config.Excludes[1] != ".sfdc-file-listing-v1" {
		t.Errorf("config.Excludes = %v, want default sentinel names", config.Excludes)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	original := os.Getenv("SFTP_PORT")
	defer func() {
		if original == "" {
			os.Unsetenv("SFTP_PORT")
		} else {
			os.Setenv("SFTP_PORT", original)
		}
	}()

	os.Setenv("SFTP_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid port, got nil")
	}
}
