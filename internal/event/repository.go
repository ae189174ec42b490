package event

import (
	"fmt"
	"regexp"
	"strings"
)

var repositoryPattern = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)/([A-Za-z0-9._-]+)$`)

// ParseRepository は "owner/repo" 形式、または GitHub の URL から owner と repo を取り出す
// 以下の形式に対応:
// - owner/repo
// - https://github.com/owner/repo(.git)
// - git@github.com:owner/repo(.git)
func ParseRepository(s string) (string, string, error) {
	slug := strings.TrimSpace(s)
	slug = strings.TrimPrefix(slug, "https://github.com/")
	slug = strings.TrimPrefix(slug, "git@github.com:")
	slug = strings.TrimSuffix(slug, ".git")

	matches := repositoryPattern.FindStringSubmatch(slug)
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid repository format: %s", s)
	}
	return matches[1], matches[2], nil
}
