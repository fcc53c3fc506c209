package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete entries permanently.",
		Example: `
journal delete 01JP5Q7ZJ4T3YF8M2C6W0XKQ9B
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return entryCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			s := remove.Remove{
				Service: d.service,
				IDs:     args,
				ShowID:  ido.ShowID,
				Out:     outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
