package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/douhashi/triage/internal/config"
	"github.com/douhashi/triage/internal/event"
	gh "github.com/douhashi/triage/internal/github"
	"github.com/douhashi/triage/internal/i18n"
	"github.com/douhashi/triage/internal/labeler"
	"github.com/douhashi/triage/internal/logger"
	"github.com/douhashi/triage/internal/report"
	"github.com/douhashi/triage/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	eventPath  string
	eventName  string
	repository string
	lang       string
	comment    bool
	rootCmd    *cobra.Command
	appLog     logger.Logger
	appCfg     *config.Config
)

// githubAPI はコマンドが使うGitHubクライアントのインターフェース
type githubAPI interface {
	labeler.API
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	EnsureLabels(ctx context.Context, owner, repo string, defs []gh.LabelDefinition) ([]string, error)
}

// モック用の関数変数
var (
	getEnvFunc             = os.Getenv
	createGitHubClientFunc = newGitHubClient
)

func newGitHubClient(cfg *config.Config, log logger.Logger) (githubAPI, error) {
	opts := []gh.ClientOption{gh.WithLogger(log)}
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, gh.WithBaseURL(cfg.GitHub.BaseURL))
	}
	client, err := gh.NewClient(cfg.GitHub.Token, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func init() {
	rootCmd = newRootCmd()
}

func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newLabelCmd())
	cmd.AddCommand(newInvalidCmd())
	cmd.AddCommand(newCheckDescriptionCmd())
	cmd.AddCommand(newLabelsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Pull Request と Issue の自動トリアージ",
		Long: `triageは、GitHub Actionsのイベントを受け取り、
Conventional Commitsとファイルパスに基づくラベル付けと
本文の品質チェックを行うCLIツールです。`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			path, err := initConfig()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// ロガーの初期化
			opts := []logger.Option{logger.WithOutput(cmd.ErrOrStderr())}
			if verbose {
				opts = append(opts, logger.WithLevel("debug"))
			}
			appLog, err = logger.NewFromEnv(opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if path != "" {
				appLog.Debug("Config loaded", "path", path)
			}

			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス（デフォルト: .github/triage.yml）")
	flags.BoolVarP(&verbose, "verbose", "v", false, "詳細出力")
	flags.StringVar(&eventPath, "event-path", "", "イベントペイロードのパス（デフォルト: $GITHUB_EVENT_PATH）")
	flags.StringVar(&eventName, "event-name", "", "イベント名（デフォルト: $GITHUB_EVENT_NAME）")
	flags.StringVar(&repository, "repository", "", "owner/repo 形式のリポジトリ（デフォルト: $GITHUB_REPOSITORY）")
	flags.StringVar(&lang, "lang", "", "メッセージの言語（fr, en）")
	flags.BoolVar(&comment, "comment", false, "指摘があればIssue/PRにコメントする")

	addCommands(cmd)
	return cmd
}

// Execute はルートコマンドを実行する
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initConfig は設定を読み込み、読み込んだファイルのパスを返す
func initConfig() (string, error) {
	cfg := config.NewConfig()
	path, err := cfg.LoadOrDefault(cfgFile)
	if err != nil {
		return "", err
	}
	if lang != "" {
		cfg.Locale = lang
	}
	if err := cfg.ValidateRules(); err != nil {
		return "", err
	}
	appCfg = cfg
	return path, nil
}

// valueOrEnv はフラグが空の場合に環境変数の値を返す
func valueOrEnv(value, key string) string {
	if value != "" {
		return value
	}
	return getEnvFunc(key)
}

// loadEvent はフラグまたは GitHub Actions の環境変数からイベントを読み込む
func loadEvent() (*event.Context, error) {
	ev, err := event.Load(
		valueOrEnv(eventPath, "GITHUB_EVENT_PATH"),
		valueOrEnv(eventName, "GITHUB_EVENT_NAME"),
		valueOrEnv(repository, "GITHUB_REPOSITORY"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return ev, nil
}

// newAPI はトークンを検証してGitHubクライアントを作成する
func newAPI() (githubAPI, error) {
	if err := appCfg.Validate(); err != nil {
		return nil, err
	}
	return createGitHubClientFunc(appCfg, appLog)
}

func newTranslator() (*i18n.Translations, error) {
	return i18n.NewTranslations(appCfg.Locale)
}

// postComment は --comment が指定され指摘がある場合にコメントを投稿する
func postComment(ctx context.Context, api githubAPI, ev *event.Context, translator i18n.Translator, messages []string) error {
	if !comment || len(messages) == 0 {
		return nil
	}
	number, ok := ev.Number()
	if !ok {
		return nil
	}
	body := report.CommentBody(translator, messages)
	if err := api.CreateComment(ctx, ev.Owner, ev.Repo, number, body); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	appLog.Info("Comment posted", "number", number, "messages", len(messages))
	return nil
}
