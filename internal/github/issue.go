package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v67/github"
)

// RemoveResult is the outcome of a label removal. It is RemoveUnknown
// whenever an error is returned.
type RemoveResult int

const (
	RemoveUnknown RemoveResult = iota
	// LabelRemoved means the label was attached and has been removed.
	LabelRemoved
	// LabelAlreadyAbsent means GitHub answered 404: the label was not attached.
	LabelAlreadyAbsent
)

func (r RemoveResult) String() string {
	switch r {
	case RemoveUnknown:
		return "unknown"
	case LabelRemoved:
		return "removed"
	case LabelAlreadyAbsent:
		return "already absent"
	default:
		return "unknown"
	}
}

// GetIssue はIssueを取得する
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	if err := validateTarget(owner, repo, number); err != nil {
		return nil, err
	}

	issue, _, err := c.issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, ClassifyError(err))
	}
	return issue, nil
}

// SetLabels replaces every label of the issue or pull request with labels.
func (c *Client) SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if err := validateTarget(owner, repo, number); err != nil {
		return err
	}

	if _, _, err := c.issues.ReplaceLabelsForIssue(ctx, owner, repo, number, labels); err != nil {
		return fmt.Errorf("failed to set labels on #%d: %w", number, ClassifyError(err))
	}

	c.logger.Info("Labels replaced", "number", number, "labels", labels)
	return nil
}

// AddLabels adds labels without touching the existing ones.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if err := validateTarget(owner, repo, number); err != nil {
		return err
	}
	if len(labels) == 0 {
		return errors.New("at least one label is required")
	}

	if _, _, err := c.issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		return fmt.Errorf("failed to add labels %v to #%d: %w", labels, number, ClassifyError(err))
	}

	c.logger.Info("Labels added", "number", number, "labels", labels)
	return nil
}

// RemoveLabel removes a single label. Only a 404 response from GitHub is
// reported as LabelAlreadyAbsent, every other failure is returned as an error.
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, name string) (RemoveResult, error) {
	if err := validateTarget(owner, repo, number); err != nil {
		return RemoveUnknown, err
	}
	if name == "" {
		return RemoveUnknown, errors.New("label name is required")
	}

	_, err := c.issues.RemoveLabelForIssue(ctx, owner, repo, number, name)
	if err != nil {
		if isNotFoundResponse(err) {
			c.logger.Debug("Label already absent", "number", number, "label", name)
			return LabelAlreadyAbsent, nil
		}
		return RemoveUnknown, fmt.Errorf("failed to remove label %s from #%d: %w", name, number, ClassifyError(err))
	}

	c.logger.Info("Label removed", "number", number, "label", name)
	return LabelRemoved, nil
}

// isNotFoundResponse は GitHub が実際に 404 を返した場合のみ true
func isNotFoundResponse(err error) bool {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return false
	}
	return respErr.Response.StatusCode == http.StatusNotFound
}

// CreateComment はIssue/PRにコメントを投稿する
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	if err := validateTarget(owner, repo, number); err != nil {
		return err
	}
	if body == "" {
		return errors.New("comment is required")
	}

	comment := &github.IssueComment{Body: github.String(body)}
	if _, _, err := c.issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("failed to create comment on #%d: %w", number, ClassifyError(err))
	}
	return nil
}
