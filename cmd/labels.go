package cmd

import (
	"fmt"

	"github.com/douhashi/triage/internal/event"
	"github.com/douhashi/triage/internal/labeler"
	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "リポジトリのラベルを管理する",
	}
	cmd.AddCommand(newLabelsSyncCmd())
	return cmd
}

func newLabelsSyncCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "ルールが使うラベルをリポジトリに作成する",
		Long: `ステータス、タイプ、エリアのラベルのうち、
リポジトリに存在しないものを作成します。既存のラベルは変更しません。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			defs := labeler.Definitions(appCfg.LabelRules())

			if dryRun {
				for _, def := range defs {
					fmt.Fprintf(out, "%s\t#%s\t%s\n", def.Name, def.Color, def.Description)
				}
				return nil
			}

			slug := valueOrEnv(repository, "GITHUB_REPOSITORY")
			if slug == "" {
				return fmt.Errorf("repository is required: use --repository or GITHUB_REPOSITORY")
			}
			owner, repo, err := event.ParseRepository(slug)
			if err != nil {
				return err
			}

			api, err := newAPI()
			if err != nil {
				return err
			}

			created, err := api.EnsureLabels(cmd.Context(), owner, repo, defs)
			if err != nil {
				return fmt.Errorf("failed to sync labels: %w", err)
			}

			if len(created) == 0 {
				fmt.Fprintln(out, "✅ すべてのラベルが存在します")
				return nil
			}
			for _, name := range created {
				fmt.Fprintf(out, "✅ %s\n", name)
			}
			fmt.Fprintf(out, "%d 個のラベルを作成しました\n", len(created))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "作成せずにラベル定義を表示する")
	return cmd
}
