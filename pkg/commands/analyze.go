package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/prompt"
	"tableflip.dev/journal/pkg/runner/analyze"
)

func addAnalyze(topLevel *cobra.Command) {
	ao := &options.AnalyzeOptions{}
	ido := &options.IDOptions{}
	output := &options.OutputOptions{}
	i := &options.InteractiveOptions{}
	var ops []analysis.Operation

	cmd := &cobra.Command{
		Use:   "analyze <id>",
		Short: "Ask Gemini about an entry.",
		Long: base.Wrap80(`Run one or more analysis operations over an entry. Needs a Gemini API key,
set as gemini.api_key in .journal.yaml, JOURNAL_GEMINI_API_KEY or GEMINI_API_KEY.
See "journal ops" for the operations.`),
		Example: `
journal analyze 01JP5Q7ZJ4T3YF8M2C6W0XKQ9B
journal analyze 01JP5Q7ZJ4T3YF8M2C6W0XKQ9B --op reflection --op advice
journal analyze 01JP5Q7ZJ4T3YF8M2C6W0XKQ9B -i
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return entryCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := output.Validate(); err != nil {
				return err
			}
			var err error
			ops, err = ao.Operations()
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
			if i.Interactive {
				pr := prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				op, err := pr.Operation()
				if err != nil {
					return err
				}
				ops = []analysis.Operation{op}
			}
			s := analyze.Analyze{
				Service: d.service,
				ID:      args[0],
				Ops:     ops,
				ShowID:  ido.ShowID,
				Format:  output.Format,
				Out:     outFor(cmd),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddAnalyzeArgs(cmd, ao)
	_ = cmd.RegisterFlagCompletionFunc("op", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(analysis.Operations()))
		for _, op := range analysis.Operations() {
			names = append(names, op.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)
	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
