// Package labeler computes and applies triage labels for pull requests and issues.
package labeler

import (
	"context"
	"fmt"

	"github.com/douhashi/triage/internal/event"
	gh "github.com/douhashi/triage/internal/github"
	"github.com/douhashi/triage/internal/i18n"
	"github.com/douhashi/triage/internal/logger"
	"github.com/google/go-github/v67/github"
	"golang.org/x/sync/errgroup"
)

// API is the part of the GitHub client the labeler needs.
type API interface {
	ListCommitMessages(ctx context.Context, owner, repo string, number int) ([]string, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	SetLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, name string) (gh.RemoveResult, error)
}

var _ API = (*gh.Client)(nil)

// Result is what a labeling run produced.
type Result struct {
	Errors []string `json:"errors"`
	Labels []string `json:"labels"`
}

// AutoLabeler applies Rules to an event.
type AutoLabeler struct {
	api        API
	rules      Rules
	translator i18n.Translator
	logger     logger.Logger
}

func NewAutoLabeler(api API, rules Rules, translator i18n.Translator, log logger.Logger) *AutoLabeler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AutoLabeler{
		api:        api,
		rules:      rules,
		translator: translator,
		logger:     log,
	}
}

// Run computes the label set of the event's pull request or issue and
// replaces the target's labels with it. Without a resolvable number it
// returns the default set and makes no API call.
func (l *AutoLabeler) Run(ctx context.Context, ev *event.Context) (*Result, error) {
	labels := NewLabelSet(l.rules.Status.Triage)
	result := &Result{Errors: []string{}}

	number, ok := ev.Number()
	if !ok {
		l.logger.Info("No issue or pull request number in event, skipping")
		result.Labels = labels.List()
		return result, nil
	}

	log := l.logger.WithFields("owner", ev.Owner, "repo", ev.Repo, "number", number)

	switch ev.Target.(type) {
	case event.PullRequest:
		messages, err := l.labelPullRequest(ctx, ev, number, labels)
		if err != nil {
			return nil, err
		}
		result.Errors = append(result.Errors, messages...)
	case event.Issue:
		if err := l.labelIssue(ctx, ev, number, labels); err != nil {
			return nil, err
		}
	}

	if labels.Has(l.rules.Status.Invalid) {
		labels.Retain(l.rules.Status.Triage, l.rules.Status.Invalid)
	}

	final := labels.List()
	if err := l.api.SetLabels(ctx, ev.Owner, ev.Repo, number, final); err != nil {
		return nil, err
	}
	log.Info("Labels computed", "labels", final, "violations", len(result.Errors))

	result.Labels = final
	return result, nil
}

func (l *AutoLabeler) labelPullRequest(ctx context.Context, ev *event.Context, number int, labels *LabelSet) ([]string, error) {
	var commits, files []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commits, err = l.api.ListCommitMessages(gctx, ev.Owner, ev.Repo, number)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = l.api.ListChangedFiles(gctx, ev.Owner, ev.Repo, number)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load pull request #%d: %w", number, err)
	}

	for _, label := range l.rules.AreaLabels(files) {
		labels.Add(label)
	}

	var messages []string
	for _, message := range commits {
		if label, ok := l.rules.CommitLabel(message); ok {
			labels.Add(label)
			continue
		}
		labels.Add(l.rules.Status.Invalid)
		messages = append(messages, l.translator.GetMessage(i18n.MsgConventionalCommitsRequired, 0, nil))
		l.logger.Debug("Commit does not follow Conventional Commits", "number", number, "subject", firstLine(message))
	}

	return messages, nil
}

func (l *AutoLabeler) labelIssue(ctx context.Context, ev *event.Context, number int, labels *LabelSet) error {
	issue, err := l.api.GetIssue(ctx, ev.Owner, ev.Repo, number)
	if err != nil {
		return err
	}
	for _, label := range l.rules.IssueLabels(issue.GetTitle(), issue.GetBody()) {
		labels.Add(label)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
