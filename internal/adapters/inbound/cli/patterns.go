package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/tui"
	"github.com/xeenaa/implaudit/internal/domain/registry"
)

func newPatternsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the checks, log patterns and behavior flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reg)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPatterns(reg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the registry as JSON")
	return cmd
}
