package labeler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions_DefaultRules(t *testing.T) {
	defs := Definitions(DefaultRules())

	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Color, def.Name)
		assert.NotEmpty(t, def.Description, def.Name)
	}

	assert.Equal(t, []string{
		"status: needs triage",
		"status: invalid",
		"status: needs review",
		// commit types sorted: chore, ci, docs, feat, fix, perf, question, refactor, test
		"type: chores",
		"type: tests",
		"type: documentation",
		"type: enhancement",
		"type: bug",
		"type: performance",
		"type: question",
		"type: refactor",
		"area: i18n",
		"area: ui",
		"area: cache",
		"area: backend",
	}, names)
}

func TestDefinitions_CustomLabels(t *testing.T) {
	rules := Rules{
		Status:        StatusLabels{Triage: "triage", Invalid: "status: invalid"},
		CommitTypes:   map[string]string{"build": "type: build"},
		Areas:         []PatternRule{{Label: "area: docs", Patterns: []string{"docs/"}}},
		IssueKeywords: []PatternRule{{Label: "type: build", Patterns: []string{"build"}}},
	}

	defs := Definitions(rules)
	require.Len(t, defs, 4)

	assert.Equal(t, "triage", defs[0].Name)
	assert.Equal(t, statusColor, defs[0].Color)
	assert.Empty(t, defs[0].Description)

	assert.Equal(t, "status: invalid", defs[1].Name)
	assert.Equal(t, "e4e669", defs[1].Color)

	assert.Equal(t, "type: build", defs[2].Name)
	assert.Equal(t, typeColor, defs[2].Color)

	assert.Equal(t, "area: docs", defs[3].Name)
	assert.Equal(t, areaColor, defs[3].Color)
}
