package labeler

import (
	"context"
	"errors"
	"testing"

	"github.com/douhashi/triage/internal/event"
	"github.com/douhashi/triage/internal/i18n"
	"github.com/douhashi/triage/internal/testutil/helpers"
	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const (
	triage  = "status: needs triage"
	invalid = "status: invalid"
)

func newTestLabeler(t *testing.T, api API) *AutoLabeler {
	t.Helper()
	trans, err := i18n.NewTranslations("fr")
	require.NoError(t, err)
	return NewAutoLabeler(api, DefaultRules(), trans, nil)
}

func pullRequestEvent(number int) *event.Context {
	return &event.Context{Owner: "papillon", Repo: "app", Name: "pull_request", Target: event.PullRequest{Number: number}}
}

func issueEvent(number int) *event.Context {
	return &event.Context{Owner: "papillon", Repo: "app", Name: "issues", Target: event.Issue{Number: number}}
}

func TestAutoLabeler_PullRequest(t *testing.T) {
	ctx := context.Background()
	guidance := "Afin d'améliorer nos processus d'automatisation et de garantir une meilleure lisibilité de l'historique Git, nous demandons à tous nos contributeurs de suivre la convention [Conventional Commits](https://www.conventionalcommits.org/en/v1.0.0/)."

	tests := []struct {
		name       string
		commits    []string
		files      []string
		wantLabels []string
		wantErrors int
	}{
		{
			name:       "不正なコミットが1つでもあればinvalidとtriageのみ",
			commits:    []string{"fix: bug", "randomtext"},
			files:      []string{"src/locales/fr.json"},
			wantLabels: []string{triage, invalid},
			wantErrors: 1,
		},
		{
			name:       "規約どおりのコミットはエリアとタイプのラベル",
			commits:    []string{"feat(ui): mode sombre", "fix: crash au démarrage"},
			files:      []string{"src/locales/en.json", "ui/components/Task.tsx"},
			wantLabels: []string{triage, "area: i18n", "area: ui", "type: enhancement", "type: bug"},
		},
		{
			name:       "複数ファイルが一致してもエリアラベルは1回",
			commits:    []string{"docs: readme"},
			files:      []string{"locales/fr.json", "locales/en.json", "locales/de.json"},
			wantLabels: []string{triage, "area: i18n", "type: documentation"},
		},
		{
			name:       "同じタイプのラベルは重複しない",
			commits:    []string{"test: a", "ci: b", "TEST(scope): c"},
			files:      nil,
			wantLabels: []string{triage, "type: tests"},
		},
		{
			name:       "不正なコミットごとにメッセージが1つ",
			commits:    []string{"wip", "update stuff", "style: format", "chore: deps"},
			files:      []string{"services/api.ts"},
			wantLabels: []string{triage, invalid},
			wantErrors: 3,
		},
		{
			name:       "コミットもファイルもない",
			wantLabels: []string{triage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("ListCommitMessages", mock.Anything, "papillon", "app", 12).Return(tt.commits, nil)
			api.On("ListChangedFiles", mock.Anything, "papillon", "app", 12).Return(tt.files, nil)
			api.On("SetLabels", mock.Anything, "papillon", "app", 12, tt.wantLabels).Return(nil)

			result, err := newTestLabeler(t, api).Run(ctx, pullRequestEvent(12))

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabels, result.Labels)
			assert.Len(t, result.Errors, tt.wantErrors)
			for _, msg := range result.Errors {
				assert.Equal(t, guidance, msg)
			}
			api.AssertExpectations(t)
			api.AssertNotCalled(t, "GetIssue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAutoLabeler_Issue(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		body       string
		wantLabels []string
	}{
		{
			name:       "タイトルのキーワードでbug",
			title:      "App crash on login",
			wantLabels: []string{triage, "type: bug"},
		},
		{
			name:       "大文字小文字を区別しない",
			title:      "Nouvelle FEATURE",
			body:       "Pouvez-vous AJOUTER les moyennes ?",
			wantLabels: []string{triage, "type: enhancement"},
		},
		{
			name:       "複数のラベル",
			title:      "Bug dans l'emploi du temps",
			body:       "Il faudrait ajouter un bouton",
			wantLabels: []string{triage, "type: bug", "type: enhancement"},
		},
		{
			name:       "アクセント付きキーワード",
			body:       "J'ai des PROBLÈMES de connexion",
			wantLabels: []string{triage, "type: bug"},
		},
		{
			name:       "キーワードなし",
			title:      "Question sur les notes",
			body:       "Comment exporter ?",
			wantLabels: []string{triage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("GetIssue", mock.Anything, "papillon", "app", 34).
				Return(&github.Issue{Title: github.String(tt.title), Body: github.String(tt.body)}, nil)
			api.On("SetLabels", mock.Anything, "papillon", "app", 34, tt.wantLabels).Return(nil)

			result, err := newTestLabeler(t, api).Run(context.Background(), issueEvent(34))

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabels, result.Labels)
			assert.Empty(t, result.Errors)
			api.AssertExpectations(t)
			api.AssertNotCalled(t, "ListCommitMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAutoLabeler_NoNumber(t *testing.T) {
	for _, ev := range []*event.Context{
		{Owner: "papillon", Repo: "app"},
		{Owner: "papillon", Repo: "app", Target: event.Issue{}},
		nil,
	} {
		api := new(MockAPI)
		result, err := newTestLabeler(t, api).Run(context.Background(), ev)

		require.NoError(t, err)
		assert.Equal(t, []string{triage}, result.Labels)
		assert.Empty(t, result.Errors)
		api.AssertNotCalled(t, "SetLabels", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAutoLabeler_Failures(t *testing.T) {
	apiErr := errors.New("GitHub API error [ServerError 502]: Bad Gateway")

	t.Run("コミット取得の失敗で中断する", func(t *testing.T) {
		api := new(MockAPI)
		api.On("ListCommitMessages", mock.Anything, "papillon", "app", 12).Return(nil, apiErr)
		api.On("ListChangedFiles", mock.Anything, "papillon", "app", 12).Return([]string{}, nil).Maybe()

		result, err := newTestLabeler(t, api).Run(context.Background(), pullRequestEvent(12))

		require.Error(t, err)
		assert.ErrorIs(t, err, apiErr)
		assert.Nil(t, result)
		api.AssertNotCalled(t, "SetLabels", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ファイル取得の失敗で中断する", func(t *testing.T) {
		api := new(MockAPI)
		api.On("ListCommitMessages", mock.Anything, "papillon", "app", 12).Return([]string{"fix: a"}, nil).Maybe()
		api.On("ListChangedFiles", mock.Anything, "papillon", "app", 12).Return(nil, apiErr)

		_, err := newTestLabeler(t, api).Run(context.Background(), pullRequestEvent(12))
		assert.ErrorIs(t, err, apiErr)
	})

	t.Run("Issue取得の失敗で中断する", func(t *testing.T) {
		api := new(MockAPI)
		api.On("GetIssue", mock.Anything, "papillon", "app", 34).Return(nil, apiErr)

		_, err := newTestLabeler(t, api).Run(context.Background(), issueEvent(34))
		assert.ErrorIs(t, err, apiErr)
	})

	t.Run("ラベル設定の失敗を返す", func(t *testing.T) {
		api := new(MockAPI)
		api.On("GetIssue", mock.Anything, "papillon", "app", 34).Return(&github.Issue{}, nil)
		api.On("SetLabels", mock.Anything, "papillon", "app", 34, []string{triage}).Return(apiErr)

		_, err := newTestLabeler(t, api).Run(context.Background(), issueEvent(34))
		assert.ErrorIs(t, err, apiErr)
	})
}

func TestAutoLabeler_CustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.Status.Triage = "triage"
	rules.CommitTypes = map[string]string{"build": "type: build"}

	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	api := new(MockAPI)
	api.On("ListCommitMessages", mock.Anything, "papillon", "app", 1).Return([]string{"build: bump", "fix: no longer mapped"}, nil)
	api.On("ListChangedFiles", mock.Anything, "papillon", "app", 1).Return([]string{}, nil)
	api.On("SetLabels", mock.Anything, "papillon", "app", 1, []string{"triage", invalid}).Return(nil)

	result, err := NewAutoLabeler(api, rules, trans, nil).Run(context.Background(), pullRequestEvent(1))

	require.NoError(t, err)
	assert.Equal(t, []string{"triage", invalid}, result.Labels)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Conventional Commits")
	assert.Contains(t, result.Errors[0], "contributor")
}

func TestAutoLabeler_LogsViolations(t *testing.T) {
	log, recorded := helpers.NewObservedLogger(zapcore.DebugLevel)
	trans, err := i18n.NewTranslations("fr")
	require.NoError(t, err)

	api := new(MockAPI)
	api.On("ListCommitMessages", mock.Anything, "papillon", "app", 12).Return([]string{"wip\n\nlong body"}, nil)
	api.On("ListChangedFiles", mock.Anything, "papillon", "app", 12).Return([]string{}, nil)
	api.On("SetLabels", mock.Anything, "papillon", "app", 12, []string{triage, invalid}).Return(nil)

	_, err = NewAutoLabeler(api, DefaultRules(), trans, log).Run(context.Background(), pullRequestEvent(12))
	require.NoError(t, err)

	violations := recorded.FilterMessage("Commit does not follow Conventional Commits")
	require.Equal(t, 1, violations.Len())
	assert.Equal(t, []string{"wip"}, helpers.FieldValues(violations, "subject"))
	assert.Equal(t, 1, recorded.FilterMessage("Labels computed").Len())
}
