// Package event は GitHub Actions から渡されるイベントコンテキストを扱う。
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v67/github"
)

// Target はイベントの対象（Pull Request か Issue のどちらか）
type Target interface {
	IssueNumber() int
	target()
}

// PullRequest は pull_request ペイロードのうち必要な部分
type PullRequest struct {
	Number int
	Body   string
}

func (p PullRequest) IssueNumber() int { return p.Number }
func (PullRequest) target() {}

// Issue は issue ペイロードのうち必要な部分
type Issue struct {
	Number int
	Title  string
	Body   string
}

func (i Issue) IssueNumber() int { return i.Number }
func (Issue) target() {}

// Context は1回の実行が扱うイベント
type Context struct {
	Owner  string
	Repo   string
	Name   string
	Target Target
}

// Number は対象のIssue/PR番号を返す。番号が解決できない場合は false
func (c *Context) Number() (int, bool) {
	if c == nil || c.Target == nil {
		return 0, false
	}
	n := c.Target.IssueNumber()
	return n, n > 0
}

// IsPullRequest は対象が Pull Request かどうか
func (c *Context) IsPullRequest() bool {
	if c == nil {
		return false
	}
	_, ok := c.Target.(PullRequest)
	return ok
}

// Body は PR 本文、なければ Issue 本文を返す
func (c *Context) Body() string {
	if c == nil {
		return ""
	}
	switch t := c.Target.(type) {
	case PullRequest:
		return t.Body
	case Issue:
		return t.Body
	default:
		return ""
	}
}

// payload は webhook ペイロードのうち参照するフィールド
type payload struct {
	PullRequest *github.PullRequest `json:"pull_request"`
	Issue       *github.Issue       `json:"issue"`
	Repository  *github.Repository  `json:"repository"`
}

// Parse はイベントペイロードを解析する。repository は "owner/repo" 形式で、
// 空の場合はペイロードの repository から owner/repo を取得する
func Parse(name string, data []byte, repository string) (*Context, error) {
	var p payload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse event payload: %w", err)
		}
	}

	ctx := &Context{Name: name}

	if repository != "" {
		owner, repo, err := ParseRepository(repository)
		if err != nil {
			return nil, err
		}
		ctx.Owner, ctx.Repo = owner, repo
	} else if p.Repository != nil {
		ctx.Owner = p.Repository.GetOwner().GetLogin()
		ctx.Repo = p.Repository.GetName()
	}
	if ctx.Owner == "" || ctx.Repo == "" {
		return nil, errors.New("repository owner and name are required")
	}

	// pull_request と issue が両方ある場合は pull_request を優先する
	switch {
	case p.PullRequest != nil && p.PullRequest.GetNumber() > 0:
		ctx.Target = PullRequest{
			Number: p.PullRequest.GetNumber(),
			Body:   p.PullRequest.GetBody(),
		}
	case p.Issue != nil:
		ctx.Target = Issue{
			Number: p.Issue.GetNumber(),
			Title:  p.Issue.GetTitle(),
			Body:   p.Issue.GetBody(),
		}
	}

	return ctx, nil
}

// Load はペイロードファイルを読み込んで解析する
func Load(path, name, repository string) (*Context, error) {
	if path == "" {
		return nil, errors.New("event path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(name, data, repository)
}

// FromEnv は GitHub Actions の環境変数からイベントを読み込む
func FromEnv() (*Context, error) {
	return Load(
		os.Getenv("GITHUB_EVENT_PATH"),
		os.Getenv("GITHUB_EVENT_NAME"),
		os.Getenv("GITHUB_REPOSITORY"),
	)
}
