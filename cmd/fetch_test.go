package cmd

import (
	"fmt"
	"os"
	"testing"

	"casefiles/config"
)

// Integration test for the fetch command. It requires a reachable SFTP
// server and is skipped by default. To run it, set
// SFTP_INTEGRATION_TEST=true along with TEST_SFTP_HOST, TEST_SFTP_PORT,
// TEST_SFTP_USER, TEST_SFTP_PASSWORD and TEST_CASE_NUMBER.

func TestFetchCommand(t *testing.T) {
	if os.Getenv("SFTP_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set SFTP_INTEGRATION_TEST=true to run")
	}

	tempDir, err := os.MkdirTemp("", "fetch-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	os.Setenv("SFTP_HOST", os.Getenv("TEST_SFTP_HOST"))
	os.Setenv("SFTP_PORT", os.Getenv("TEST_SFTP_PORT"))
	defer func() {
		os.Unsetenv("SFTP_HOST")
		os.Unsetenv("SFTP_PORT")
	}()

	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	// Feed the credential prompts through stdin.
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	fmt.Fprintf(w, "%s\n%s\n", os.Getenv("TEST_SFTP_USER"), os.Getenv("TEST_SFTP_PASSWORD"))
	w.Close()
	defer func() { os.Stdin = oldStdin }()

	caseNumber := os.Getenv("TEST_CASE_NUMBER")
	fetchCmd.SetArgs([]string{
		"--case", caseNumber,
		"--destination", tempDir,
		"--yes",
	})
	if err := fetchCmd.Execute(); err != nil {
		t.Fatalf("Fetch command failed: %v", err)
	}

	files, err := os.ReadDir(tempDir + "/" + caseNumber)
	if err != nil {
		t.Fatalf("Failed to read case directory: %v", err)
	}

	if len(files) == 0 {
		t.Errorf("No files were downloaded to %s", tempDir)
	}
}
