// Package ops prints the legend of analysis operations.
package ops

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/printers"
)

// Ops prints each operation with its aliases and what it asks for.
type Ops struct {
	Out io.Writer
}

func (k *Ops) Do(_ context.Context) error {
	out := printers.Writer(k.Out)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("Operation"), bold.Sprint("Aliases"), bold.Sprint("Meaning"))
	for _, op := range analysis.Operations() {
		tbl.AddRow(op.String(), faint.Sprint(strings.Join(op.Aliases(), ", ")), op.Meaning())
	}

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
