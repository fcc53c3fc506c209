package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/prompt"
	"tableflip.dev/journal/pkg/runner/profile"
)

func addName(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "name [your name]",
		Short: "Show the greeting, or set the name it uses.",
		Example: `
journal name
journal name Ada Lovelace
journal name -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			name := strings.Join(args, " ")
			if i.Interactive && name == "" {
				pr := prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				if name, err = pr.Name(); err != nil {
					return err
				}
			}
			p := profile.Profile{
				Profiles: d.journal,
				Name:     name,
				Log:      logger,
				Out:      outFor(cmd),
			}
			return p.Do(cmd.Context())
		},
	}

	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
