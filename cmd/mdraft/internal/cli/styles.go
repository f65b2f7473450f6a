package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdraft/cmd/mdraft/internal/bootstrap"
)

func newStylesCmd(global *globalFlags) *cobra.Command {
	var blockStyles, inlineStyles map[string]string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Print the effective style tables",
		Long:  `Print the inline and block style tables after config and flag overrides are applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := global.build(cmd)
			if err != nil {
				return err
			}
			overrides, err := bootstrap.ParseStyles(blockStyles, inlineStyles)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(module.Module.Styles(overrides), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", payload)
			return err
		},
	}
	cmd.Flags().StringToStringVar(&blockStyles, "block-style", nil, "Block style override, e.g. Header1=title")
	cmd.Flags().StringToStringVar(&inlineStyles, "inline-style", nil, "Inline style override, e.g. Strong=BOLD:**")
	return cmd
}
