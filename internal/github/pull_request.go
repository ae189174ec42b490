package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v67/github"
)

// ListCommitMessages returns the message of every commit of a pull request.
func (c *Client) ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error) {
	if err := validateTarget(owner, repo, number); err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: perPage}
	var messages []string
	for {
		commits, resp, err := c.pulls.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of #%d: %w", number, ClassifyError(err))
		}
		for _, commit := range commits {
			messages = append(messages, commit.GetCommit().GetMessage())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("Listed pull request commits", "number", number, "count", len(messages))
	return messages, nil
}

// ListChangedFiles returns the path of every file changed by a pull request.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	if err := validateTarget(owner, repo, number); err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: perPage}
	var paths []string
	for {
		files, resp, err := c.pulls.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of #%d: %w", number, ClassifyError(err))
		}
		for _, file := range files {
			paths = append(paths, file.GetFilename())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("Listed pull request files", "number", number, "count", len(paths))
	return paths, nil
}
