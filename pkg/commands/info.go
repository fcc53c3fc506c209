package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where the journal is stored.",
		Example: `
journal info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			s := info.Info{
				Config:   cfg,
				Service:  d.service,
				Profiles: d.journal,
				Out:      outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
