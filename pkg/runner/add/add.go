package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

type Add struct {
	Service *app.Service

	Title  string
	Text   string
	ShowID bool
	Format string

	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no journal")
	}

	e, err := n.Service.Add(ctx, n.Title, n.Text)
	if err != nil {
		return err
	}

	if !printers.IsPretty(n.Format) {
		return printers.Encode(printers.Writer(n.Out), n.Format, e)
	}

	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount("Journal", len(all))
	pp.Collection(all...)
	return nil
}
