package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(journal completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(journal completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// entryCompletions offers the ids of entries starting with toComplete.
func entryCompletions(ctx context.Context, toComplete string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := open()
	if err != nil {
		return nil
	}
	defer d.Close()

	ids := make([]string, 0)
	for _, e := range d.journal.ListEntries(ctx) {
		if strings.HasPrefix(e.ID, strings.ToUpper(toComplete)) {
			ids = append(ids, e.ID+"\t"+e.Title)
		}
	}
	return ids
}
