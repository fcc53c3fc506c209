package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/wipe"
)

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry and your name.",
		Example: `
journal clear
journal clear --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			s := wipe.Wipe{
				Service:     d.service,
				Yes:         co.Yes,
				Interactive: stdinIsTerminal(cmd),
				In:          cmd.InOrStdin(),
				Out:         outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

// stdinIsTerminal is false when cmd reads from anything but a terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	if cmd.InOrStdin() != os.Stdin {
		return false
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
