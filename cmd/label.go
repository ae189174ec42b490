package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/douhashi/triage/internal/labeler"
	"github.com/douhashi/triage/internal/report"
	"github.com/spf13/cobra"
)

func newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Pull Request / Issue にラベルを付ける",
		Long: `イベントの対象にラベルを付けます。

Pull Requestではコミットメッセージと変更ファイル、Issueではタイトルと本文から
ラベルを決定し、対象のラベルをすべて置き換えます。
Conventional Commitsに従わないコミットが1つでもあれば、
ラベルは needs triage と invalid のみになります。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ev, err := loadEvent()
			if err != nil {
				return err
			}
			api, err := newAPI()
			if err != nil {
				return err
			}
			translator, err := newTranslator()
			if err != nil {
				return err
			}

			result, err := labeler.NewAutoLabeler(api, appCfg.LabelRules(), translator, appLog).Run(ctx, ev)
			if err != nil {
				return fmt.Errorf("failed to label: %w", err)
			}

			if err := report.WriteJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if err := writeOutputs(map[string]interface{}{
				"labels": result.Labels,
				"errors": result.Errors,
			}); err != nil {
				return err
			}

			return postComment(ctx, api, ev, translator, result.Errors)
		},
	}
	return cmd
}

// writeOutputs は GITHUB_OUTPUT に各値を JSON で書き出す
func writeOutputs(values map[string]interface{}) error {
	path := getEnvFunc("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	for _, key := range []string{"labels", "errors", "updated"} {
		v, ok := values[key]
		if !ok {
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode output %q: %w", key, err)
		}
		if err := report.WriteActionsOutput(path, key, string(data)); err != nil {
			return err
		}
	}
	return nil
}
