package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

// Show prints one entry in full.
type Show struct {
	Service *app.Service

	ID     string
	ShowID bool
	Width  int
	Format string

	Out io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no journal")
	}

	e, err := n.Service.Entry(ctx, n.ID)
	if err != nil {
		return err
	}

	if !printers.IsPretty(n.Format) {
		return printers.Encode(printers.Writer(n.Out), n.Format, e)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: n.Out}
	pp.NewLine()
	pp.Entry(e)
	return nil
}
