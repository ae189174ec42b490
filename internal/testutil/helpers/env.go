package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

// ActionsEnvKeys are the variables that leak configuration from a GitHub
// Actions runner or a developer shell into tests.
var ActionsEnvKeys = []string{
	"GITHUB_TOKEN",
	"GITHUB_API_URL",
	"GITHUB_EVENT_PATH",
	"GITHUB_EVENT_NAME",
	"GITHUB_REPOSITORY",
	"GITHUB_OUTPUT",
	"TRIAGE_GITHUB_TOKEN",
	"TRIAGE_GITHUB_BASE_URL",
	"TRIAGE_LOCALE",
	"TRIAGE_DESCRIPTION_MIN_LENGTH",
	"TRIAGE_DESCRIPTION_ATTACHMENT_MARKER",
	"TRIAGE_LABELS_TRIAGE",
	"TRIAGE_LABELS_INVALID",
	"TRIAGE_LABELS_NEEDS_REVIEW",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DEBUG",
}

// ClearEnv blanks keys (ActionsEnvKeys when none are given) for the
// duration of the test. Empty values are treated as unset by the config loader.
func ClearEnv(t *testing.T, keys ...string) {
	t.Helper()
	if len(keys) == 0 {
		keys = ActionsEnvKeys
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

// WriteFile writes content to name inside a fresh temp directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
