package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/prompt"
	"tableflip.dev/journal/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	ido := &options.IDOptions{}
	output := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add --title <title> <text>",
		Short: "Write a new entry.",
		Example: `
journal add --title "Beach day" the water was cold and perfect
journal add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive && len(args) == 0 {
				return nil
			}
			return ao.SetText(args)
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
			if i.Interactive && (ao.Title == "" || ao.Text == "") {
				pr := prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				title, text, err := pr.Entry(ao.Title)
				if err != nil {
					return err
				}
				ao.Title = title
				if ao.Text == "" {
					ao.Text = text
				}
			}
			s := add.Add{
				Service: d.service,
				Title:   ao.Title,
				Text:    ao.Text,
				ShowID:  ido.ShowID,
				Format:  output.Format,
				Out:     outFor(cmd),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, ao)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
