package analyze

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

// Analyze opens an entry and runs one or more operations over it. The
// requests go out together and results are printed in the order asked.
type Analyze struct {
	Service *app.Service

	ID     string
	Ops    []analysis.Operation
	ShowID bool
	Format string

	Out io.Writer
}

func (n *Analyze) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not analyze, no journal")
	}
	if len(n.Ops) == 0 {
		return errors.New("can not analyze, no operation given")
	}

	e, err := n.Service.Entry(ctx, n.ID)
	if err != nil {
		return err
	}

	view := n.Service.NewEntryView()
	view.Open(e)
	defer view.Wait()
	defer view.Dismiss()

	pretty := printers.IsPretty(n.Format)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if pretty {
		pp.NewLine()
		pp.Entry(e)
	}

	results := make([]*analysis.Result, len(n.Ops))
	errs := make([]error, len(n.Ops))
	for i, op := range n.Ops {
		if err := view.Analyze(ctx, op, func(res *analysis.Result, err error) {
			results[i], errs[i] = res, err
		}); err != nil {
			return err
		}
	}
	if pretty && view.Loading() {
		pp.Line("Loading...")
		pp.NewLine()
	}
	view.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	if !pretty {
		if len(results) == 1 {
			return printers.Encode(printers.Writer(n.Out), n.Format, results[0])
		}
		return printers.Encode(printers.Writer(n.Out), n.Format, results)
	}
	for _, res := range results {
		pp.Analysis(res)
	}
	return nil
}
