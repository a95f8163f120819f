package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vodsnip/internal/deps"
)

func newDepsCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			results := deps.Check(cmd.Context(), deps.Requirements(cfg))

			rows := make([][]string, 0, len(results))
			missingRequired := false
			for _, status := range results {
				state := "ok"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						missingRequired = true
					}
				}
				optional := ""
				if status.Optional {
					optional = "optional"
				}
				detail := status.Version
				if detail == "" {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, optional, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Status", "", "Version"},
				rows,
				nil,
			))
			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
