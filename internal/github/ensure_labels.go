package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v67/github"
)

// LabelDefinition defines a GitHub label with its properties
type LabelDefinition struct {
	Name        string
	Color       string
	Description string
}

// EnsureLabels はdefsのうちリポジトリに存在しないラベルを作成し、作成したラベル名を返す
func (c *Client) EnsureLabels(ctx context.Context, owner, repo string, defs []LabelDefinition) ([]string, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}

	existing, err := c.listRepositoryLabels(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository labels: %w", err)
	}

	var created []string
	for _, def := range defs {
		if existing[def.Name] {
			continue
		}
		label := &github.Label{
			Name:        github.String(def.Name),
			Color:       github.String(def.Color),
			Description: github.String(def.Description),
		}
		if _, _, err := c.issues.CreateLabel(ctx, owner, repo, label); err != nil {
			return created, fmt.Errorf("failed to create label %s: %w", def.Name, ClassifyError(err))
		}
		existing[def.Name] = true
		created = append(created, def.Name)
		c.logger.Info("Label created", "label", def.Name)
	}

	return created, nil
}

func (c *Client) listRepositoryLabels(ctx context.Context, owner, repo string) (map[string]bool, error) {
	opts := &github.ListOptions{PerPage: perPage}
	names := make(map[string]bool)
	for {
		labels, resp, err := c.issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			return nil, ClassifyError(err)
		}
		for _, label := range labels {
			names[label.GetName()] = true
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
