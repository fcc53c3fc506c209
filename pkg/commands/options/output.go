package options

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Format string
	// Out receives structured errors. Defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", printers.FormatPretty,
		fmt.Sprintf("Output format. One of %s.", strings.Join(printers.Formats(), ", ")))
}

// Validate rejects unknown formats before anything runs.
func (o *OutputOptions) Validate() error {
	for _, f := range printers.Formats() {
		if strings.EqualFold(o.Format, f) {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q, want one of %s", o.Format, strings.Join(printers.Formats(), ", "))
}

// HandleError prints err in the requested structured format and swallows it.
// Pretty output returns err unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || printers.IsPretty(o.Format) {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if perr := printers.Encode(printers.Writer(o.Out), o.Format, out); perr != nil {
		return perr
	}
	return nil
}
