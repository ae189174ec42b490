package labeler

import (
	"context"

	gh "github.com/douhashi/triage/internal/github"
	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error) {
	args := m.Called(ctx, owner, repo, number)
	messages, _ := args.Get(0).([]string)
	return messages, args.Error(1)
}

func (m *MockAPI) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	args := m.Called(ctx, owner, repo, number)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *MockAPI) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	args := m.Called(ctx, owner, repo, number)
	issue, _ := args.Get(0).(*github.Issue)
	return issue, args.Error(1)
}

func (m *MockAPI) SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	args := m.Called(ctx, owner, repo, number, labels)
	return args.Error(0)
}

func (m *MockAPI) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	args := m.Called(ctx, owner, repo, number, labels)
	return args.Error(0)
}

func (m *MockAPI) RemoveLabel(ctx context.Context, owner, repo string, number int, name string) (gh.RemoveResult, error) {
	args := m.Called(ctx, owner, repo, number, name)
	return args.Get(0).(gh.RemoveResult), args.Error(1)
}
