package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/douhashi/triage/internal/config"
	gh "github.com/douhashi/triage/internal/github"
	"github.com/douhashi/triage/internal/logger"
	"github.com/douhashi/triage/internal/testutil/helpers"
	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockGitHubAPI はテスト用のGitHubクライアント
type mockGitHubAPI struct {
	mock.Mock
}

func (m *mockGitHubAPI) ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error) {
	args := m.Called(ctx, owner, repo, number)
	messages, _ := args.Get(0).([]string)
	return messages, args.Error(1)
}

func (m *mockGitHubAPI) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	args := m.Called(ctx, owner, repo, number)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *mockGitHubAPI) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	args := m.Called(ctx, owner, repo, number)
	issue, _ := args.Get(0).(*github.Issue)
	return issue, args.Error(1)
}

func (m *mockGitHubAPI) SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	return m.Called(ctx, owner, repo, number, labels).Error(0)
}

func (m *mockGitHubAPI) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	return m.Called(ctx, owner, repo, number, labels).Error(0)
}

func (m *mockGitHubAPI) RemoveLabel(ctx context.Context, owner, repo string, number int, name string) (gh.RemoveResult, error) {
	args := m.Called(ctx, owner, repo, number, name)
	return args.Get(0).(gh.RemoveResult), args.Error(1)
}

func (m *mockGitHubAPI) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	return m.Called(ctx, owner, repo, number, body).Error(0)
}

func (m *mockGitHubAPI) EnsureLabels(ctx context.Context, owner, repo string, defs []gh.LabelDefinition) ([]string, error) {
	args := m.Called(ctx, owner, repo, defs)
	created, _ := args.Get(0).([]string)
	return created, args.Error(1)
}

const (
	pullRequestPayload = `{
  "action": "opened",
  "pull_request": {"number": 12, "body": "Corrige la traduction"},
  "repository": {"name": "app", "owner": {"login": "papillon"}}
}`
	issuePayload = `{
  "action": "opened",
  "issue": {"number": 34, "title": "App crash on login", "body": null},
  "repository": {"name": "app", "owner": {"login": "papillon"}}
}`
)

// testEnv はコマンド実行に必要な環境を用意する
type testEnv struct {
	api        *mockGitHubAPI
	env        map[string]string
	outputPath string
}

func setupTestEnv(t *testing.T, payload string) *testEnv {
	t.Helper()

	// 実行環境の設定が影響しないようにする
	helpers.ClearEnv(t)
	t.Setenv("GITHUB_TOKEN", "test-token")

	eventFile := helpers.WriteFile(t, "event.json", payload)
	te := &testEnv{
		api:        new(mockGitHubAPI),
		outputPath: filepath.Join(filepath.Dir(eventFile), "github_output"),
	}
	te.env = map[string]string{
		"GITHUB_EVENT_PATH": eventFile,
		"GITHUB_EVENT_NAME": "pull_request",
		"GITHUB_OUTPUT":     te.outputPath,
	}

	origGetEnv := getEnvFunc
	origCreateClient := createGitHubClientFunc
	t.Cleanup(func() {
		getEnvFunc = origGetEnv
		createGitHubClientFunc = origCreateClient
	})

	getEnvFunc = func(key string) string {
		return te.env[key]
	}
	createGitHubClientFunc = func(cfg *config.Config, log logger.Logger) (githubAPI, error) {
		return te.api, nil
	}
	return te
}

// executeCommand は新しいルートコマンドで args を実行する
func executeCommand(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	rootCmd = newRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
