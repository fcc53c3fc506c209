package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/timeutil"
)

// SinceOptions
type SinceOptions struct {
	Since string
}

func AddSinceArgs(cmd *cobra.Command, o *SinceOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only entries written within this window, example: --since=3d or --since=1w2d.`)
}

func (o *SinceOptions) Window() (time.Duration, error) {
	return timeutil.ParseWindow(o.Since)
}
