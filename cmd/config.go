package cmd

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "設定を確認する",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "有効な設定をYAMLで表示する（トークンはマスクされます）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCfg.WriteYAML(cmd.OutOrStdout())
		},
	})
	return cmd
}
