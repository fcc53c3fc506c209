package remove

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/printers"
)

// Remove deletes entries by id. Deleting an id that is not in the journal
// is not an error; the id is reported as skipped.
type Remove struct {
	Service *app.Service

	IDs    []string
	ShowID bool

	Out io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no journal")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	for _, id := range n.IDs {
		if _, err := n.Service.Entry(ctx, id); errors.Is(err, journal.ErrNotFound) {
			pp.Line("skipped %s, no such entry", id)
			continue
		}
		if err := n.Service.Delete(ctx, id); err != nil {
			return err
		}
		pp.Line("deleted %s", id)
	}

	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.TitleWithCount("Journal", len(all))
	pp.Collection(all...)
	return nil
}
