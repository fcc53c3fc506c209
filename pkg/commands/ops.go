package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/runner/ops"
)

func addOps(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "Print the analysis operations and their aliases.",
		Example: `
journal ops
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := ops.Ops{Out: outFor(cmd)}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
