package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Title string
	Text  string
}

func AddEntryArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the entry.")
}

// SetText takes the entry text from the positional arguments.
func (o *AddOptions) SetText(args []string) error {
	if len(args) < 1 {
		return errors.New("requires the entry text")
	}
	o.Text = strings.Join(args, " ")
	return nil
}
