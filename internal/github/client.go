package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/triage/internal/logger"
	"github.com/douhashi/triage/internal/version"
	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
)

// IssuesService is the subset of the GitHub Issues API used by the bot.
type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	ReplaceLabelsForIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
}

// PullRequestsService is the subset of the GitHub Pull Requests API used by the bot.
type PullRequestsService interface {
	ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

const perPage = 100

// Client はGitHub REST APIクライアントのラッパー
type Client struct {
	issues IssuesService
	pulls  PullRequestsService
	logger logger.Logger
}

type clientOptions struct {
	logger  logger.Logger
	baseURL string
}

// ClientOption configures NewClient.
type ClientOption func(*clientOptions)

// WithLogger sets the logger used for API calls and HTTP debug output.
func WithLogger(l logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// NewClient は認証済みのGitHub APIクライアントを作成する
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &clientOptions{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	// ロギングはoauth2の内側に置き、Authorizationヘッダーがマスクされた状態で出力されるようにする
	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base: &loggingRoundTripper{
			base:   http.DefaultTransport,
			logger: o.logger,
		},
	}
	gh := github.NewClient(&http.Client{Transport: transport})
	gh.UserAgent = version.UserAgent()

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		gh.BaseURL = u
	}

	return NewClientWithServices(gh.Issues, gh.PullRequests, o.logger), nil
}

// NewClientWithServices builds a Client over explicit service implementations.
func NewClientWithServices(issues IssuesService, pulls PullRequestsService, l logger.Logger) *Client {
	if l == nil {
		l = logger.NewNop()
	}
	return &Client{
		issues: issues,
		pulls:  pulls,
		logger: l,
	}
}

func validateRepo(owner, repo string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if repo == "" {
		return errors.New("repo is required")
	}
	return nil
}

func validateTarget(owner, repo string, number int) error {
	if err := validateRepo(owner, repo); err != nil {
		return err
	}
	if number <= 0 {
		return errors.New("issue number must be positive")
	}
	return nil
}
