package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	wo := &options.WatchOptions{}
	so := &options.SinceOptions{}
	var since time.Duration
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List the entries, oldest first.",
		Example: `
journal list
journal list --show-id
journal list -o json
journal list --since 1w
journal list --watch
`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := output.Validate(); err != nil {
				return err
			}
			var err error
			since, err = so.Window()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = outFor(cmd)
			d, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			defer d.Close()
			s := list.List{
				Service: d.service,
				ShowID:  ido.ShowID,
				Format:  output.Format,
				Since:   since,
				Watch:   wo.Watch,
				Log:     logger,
				Out:     outFor(cmd),
			}
			if w := d.watcher(); w != nil {
				s.Watcher = w
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddSinceArgs(cmd, so)
	options.AddWatchArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
