package cmd

import (
	"fmt"

	"github.com/douhashi/triage/internal/labeler"
	"github.com/douhashi/triage/internal/report"
	"github.com/spf13/cobra"
)

func newInvalidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invalid <add|remove>",
		Short: "invalid ラベルを付け外しする",
		Long: `invalid ラベルを付け外しします。

add:    invalid を付け、Pull Requestでは needs review を外す
remove: invalid を外し、Pull Requestでは needs review を付ける

付いていないラベルの削除は成功として扱います。`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(labeler.ToggleAdd), string(labeler.ToggleRemove)},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := labeler.ParseToggleAction(args[0])
			if err != nil {
				return err
			}

			ev, err := loadEvent()
			if err != nil {
				return err
			}
			api, err := newAPI()
			if err != nil {
				return err
			}

			toggle := labeler.NewInvalidToggle(api, appCfg.LabelRules().Status, appLog)
			updated, err := toggle.Apply(cmd.Context(), ev, action)
			if err != nil {
				return fmt.Errorf("failed to %s invalid label: %w", action, err)
			}
			if !updated {
				appLog.Info("No issue or pull request number in event, nothing to do")
			}

			out := struct {
				Updated bool `json:"updated"`
			}{Updated: updated}
			if err := report.WriteJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return writeOutputs(map[string]interface{}{"updated": updated})
		},
	}
	return cmd
}
