package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one entry in full.",
		Example: `
journal show 01JP5Q7ZJ4T3YF8M2C6W0XKQ9B
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return entryCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return output.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = outFor(cmd)
			d, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer d.Close()
			s := show.Show{
				Service: d.service,
				ID:      args[0],
				ShowID:  ido.ShowID,
				Format:  output.Format,
				Out:     outFor(cmd),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
