package cmd

import (
	"fmt"

	"github.com/douhashi/triage/internal/description"
	"github.com/douhashi/triage/internal/report"
	"github.com/spf13/cobra"
)

func newCheckDescriptionCmd() *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "check-description",
		Short: "Pull Request / Issue の本文を確認する",
		Long: `本文の長さと、Pull Requestではスクリーンショットの有無を確認します。
--comment を指定すると指摘をコメントとして投稿します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := loadEvent()
			if err != nil {
				return err
			}
			translator, err := newTranslator()
			if err != nil {
				return err
			}

			checker := description.NewChecker(translator)
			checker.MinLength = appCfg.Description.MinLength
			checker.AttachmentMarker = appCfg.Description.AttachmentMarker
			messages := checker.Check(ev)

			out := struct {
				Errors []string `json:"errors"`
			}{Errors: messages}
			if err := report.WriteJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if err := writeOutputs(map[string]interface{}{"errors": messages}); err != nil {
				return err
			}

			// チェックだけならトークンは不要
			if comment && len(messages) > 0 {
				api, err := newAPI()
				if err != nil {
					return err
				}
				if err := postComment(cmd.Context(), api, ev, translator, messages); err != nil {
					return err
				}
			}

			if fail && len(messages) > 0 {
				return fmt.Errorf("description check failed with %d issue(s)", len(messages))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "指摘があれば終了コード1で終了する")
	return cmd
}
