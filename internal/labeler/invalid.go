package labeler

import (
	"context"
	"fmt"

	"github.com/douhashi/triage/internal/event"
	gh "github.com/douhashi/triage/internal/github"
	"github.com/douhashi/triage/internal/logger"
)

// ToggleAction selects what InvalidToggle.Apply does.
type ToggleAction string

const (
	ToggleAdd    ToggleAction = "add"
	ToggleRemove ToggleAction = "remove"
)

// ParseToggleAction validates an action name.
func ParseToggleAction(s string) (ToggleAction, error) {
	switch ToggleAction(s) {
	case ToggleAdd, ToggleRemove:
		return ToggleAction(s), nil
	default:
		return "", fmt.Errorf("unknown action %q: expected add or remove", s)
	}
}

// InvalidToggle flips the invalid marker, swapping the needs-review marker
// on pull requests.
type InvalidToggle struct {
	api    API
	status StatusLabels
	logger logger.Logger
}

func NewInvalidToggle(api API, status StatusLabels, log logger.Logger) *InvalidToggle {
	if log == nil {
		log = logger.NewNop()
	}
	return &InvalidToggle{api: api, status: status, logger: log}
}

// Apply runs action. It returns false only when the event has no number.
func (t *InvalidToggle) Apply(ctx context.Context, ev *event.Context, action ToggleAction) (bool, error) {
	switch action {
	case ToggleAdd:
		return t.Add(ctx, ev)
	case ToggleRemove:
		return t.Remove(ctx, ev)
	default:
		return false, fmt.Errorf("unknown action %q", action)
	}
}

// Add attaches the invalid marker and, on pull requests, drops needs-review.
func (t *InvalidToggle) Add(ctx context.Context, ev *event.Context) (bool, error) {
	number, ok := ev.Number()
	if !ok {
		return false, nil
	}

	if err := t.api.AddLabels(ctx, ev.Owner, ev.Repo, number, []string{t.status.Invalid}); err != nil {
		return true, err
	}

	if ev.IsPullRequest() {
		if err := t.removeIgnoringAbsent(ctx, ev, number, t.status.NeedsReview); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Remove drops the invalid marker and, on pull requests, adds needs-review back.
func (t *InvalidToggle) Remove(ctx context.Context, ev *event.Context) (bool, error) {
	number, ok := ev.Number()
	if !ok {
		return false, nil
	}

	if err := t.removeIgnoringAbsent(ctx, ev, number, t.status.Invalid); err != nil {
		return true, err
	}

	if ev.IsPullRequest() {
		if err := t.api.AddLabels(ctx, ev.Owner, ev.Repo, number, []string{t.status.NeedsReview}); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (t *InvalidToggle) removeIgnoringAbsent(ctx context.Context, ev *event.Context, number int, name string) error {
	result, err := t.api.RemoveLabel(ctx, ev.Owner, ev.Repo, number, name)
	if err != nil {
		return err
	}
	if result == gh.LabelAlreadyAbsent {
		t.logger.Debug("Label was not attached", "number", number, "label", name)
	}
	return nil
}
