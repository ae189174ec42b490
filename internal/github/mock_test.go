package github

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
)

// MockIssuesService is a mock implementation of IssuesService
type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	issue, _ := args.Get(0).(*github.Issue)
	resp, _ := args.Get(1).(*github.Response)
	return issue, resp, args.Error(2)
}

func (m *MockIssuesService) ReplaceLabelsForIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	result, _ := args.Get(0).([]*github.Label)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

func (m *MockIssuesService) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	result, _ := args.Get(0).([]*github.Label)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

func (m *MockIssuesService) RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo, number, label)
	resp, _ := args.Get(0).(*github.Response)
	return resp, args.Error(1)
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	result, _ := args.Get(0).(*github.IssueComment)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

func (m *MockIssuesService) ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	result, _ := args.Get(0).([]*github.Label)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

func (m *MockIssuesService) CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, label)
	result, _ := args.Get(0).(*github.Label)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

// MockPullRequestsService is a mock implementation of PullRequestsService
type MockPullRequestsService struct {
	mock.Mock
}

func (m *MockPullRequestsService) ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts.Page)
	result, _ := args.Get(0).([]*github.RepositoryCommit)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

func (m *MockPullRequestsService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts.Page)
	result, _ := args.Get(0).([]*github.CommitFile)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

// テスト用のヘルパー関数
func newErrorResponse(status int, message string) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Request: &http.Request{
				Method: http.MethodDelete,
				URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/papillon/app/issues/1/labels/x"},
			},
		},
		Message: message,
	}
}

func newTestResponse(nextPage int) *github.Response {
	return &github.Response{NextPage: nextPage}
}

func newTestCommit(message string) *github.RepositoryCommit {
	return &github.RepositoryCommit{
		Commit: &github.Commit{Message: github.String(message)},
	}
}

func newTestFile(name string) *github.CommitFile {
	return &github.CommitFile{Filename: github.String(name)}
}
