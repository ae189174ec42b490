package labeler

import (
	"regexp"
	"strings"
)

// StatusLabels are the process markers managed by the bot.
type StatusLabels struct {
	Triage      string
	Invalid     string
	NeedsReview string
}

// PatternRule attaches Label when any of Patterns is found.
type PatternRule struct {
	Label    string
	Patterns []string
}

// Rules are the label mapping tables. They are built once at startup and
// must not be modified afterwards.
type Rules struct {
	Status StatusLabels
	// CommitTypes maps a lower-cased conventional commit type to a label.
	CommitTypes map[string]string
	// Areas are matched in order against changed file paths (case-sensitive).
	Areas []PatternRule
	// IssueKeywords are matched in order against lower-cased issue content.
	IssueKeywords []PatternRule
}

// DefaultRules returns the tables used by the app repository.
func DefaultRules() Rules {
	return Rules{
		Status: StatusLabels{
			Triage:      "status: needs triage",
			Invalid:     "status: invalid",
			NeedsReview: "status: needs review",
		},
		CommitTypes: map[string]string{
			"fix":      "type: bug",
			"docs":     "type: documentation",
			"feat":     "type: enhancement",
			"perf":     "type: performance",
			"question": "type: question",
			"refactor": "type: refactor",
			"test":     "type: tests",
			"chore":    "type: chores",
			"ci":       "type: tests",
		},
		Areas: []PatternRule{
			{Label: "area: i18n", Patterns: []string{"locales", "fr.json", "en.json"}},
			{Label: "area: ui", Patterns: []string{"ui", "components"}},
			{Label: "area: cache", Patterns: []string{"database", "DatabaseProvider.tsx", "schema"}},
			{Label: "area: backend", Patterns: []string{"services", "stores"}},
		},
		IssueKeywords: []PatternRule{
			{Label: "type: bug", Patterns: []string{"bug", "crash", "problèmes"}},
			{Label: "type: enhancement", Patterns: []string{"feature", "ajouter"}},
		},
	}
}

var commitPrefix = regexp.MustCompile(`^(\w+)(\(.+\))?:`)

// CommitType extracts the lower-cased type token of a conventional commit
// subject. ok is false when the message has no "type:" or "type(scope):" prefix.
func CommitType(message string) (string, bool) {
	matches := commitPrefix.FindStringSubmatch(message)
	if matches == nil {
		return "", false
	}
	return strings.ToLower(matches[1]), true
}

// CommitLabel returns the label mapped to the commit's type.
func (r Rules) CommitLabel(message string) (string, bool) {
	prefix, ok := CommitType(message)
	if !ok {
		return "", false
	}
	label, ok := r.CommitTypes[prefix]
	if !ok || label == "" {
		return "", false
	}
	return label, true
}

// AreaLabels returns, in rule order, the labels whose patterns occur in any path.
func (r Rules) AreaLabels(paths []string) []string {
	var labels []string
	for _, rule := range r.Areas {
		if anyContains(paths, rule.Patterns, false) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}

// IssueLabels returns, in rule order, the labels whose keywords occur in the
// issue title or body. Matching ignores case.
func (r Rules) IssueLabels(title, body string) []string {
	content := []string{strings.ToLower(title + " " + body)}
	var labels []string
	for _, rule := range r.IssueKeywords {
		if anyContains(content, rule.Patterns, true) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}

func anyContains(haystacks, patterns []string, lower bool) bool {
	for _, pattern := range patterns {
		if lower {
			pattern = strings.ToLower(pattern)
		}
		for _, s := range haystacks {
			if strings.Contains(s, pattern) {
				return true
			}
		}
	}
	return false
}
