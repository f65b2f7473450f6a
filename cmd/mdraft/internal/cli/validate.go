package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdraft"
)

func newValidateCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json>...",
		Short: "Validate content state JSON files",
		Long: `Check Draft.js raw content state files against the content state schema
and verify every entity range references an entity in the entity map.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := global.build(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				payload, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				err = module.Module.ValidateJSON(payload)
				if err == nil {
					fmt.Fprintf(out, "ok      %s\n", path)
					continue
				}
				failed++
				fmt.Fprintf(out, "invalid %s\n", path)
				issues := mdraft.Issues(err)
				if len(issues) == 0 {
					fmt.Fprintf(out, "  %v\n", err)
				}
				for _, issue := range issues {
					fmt.Fprintf(out, "  %s: %s\n", issue.Location, issue.Message)
				}
			}
			if failed > 0 {
				return errors.New(plural(failed, "invalid document"))
			}
			return nil
		},
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
