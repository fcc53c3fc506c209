// Package home prints the start screen: the greeting, then the journal
// once a name is known.
package home

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

type Home struct {
	Service *app.Service
	ShowID  bool

	Log *zap.Logger
	Out io.Writer
}

func (n *Home) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Journal == nil {
		return errors.New("can not start, no journal")
	}

	s := n.Service.NewSession().WithLogger(n.Log)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if s.Start(ctx) == app.StageOnboarding {
		pp.Title(s.Greeting())
		pp.Line("Tell the journal with: journal name <your name>")
		return nil
	}

	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	pp.Title(s.Greeting())
	pp.NewLine()
	pp.TitleWithCount("Journal", len(all))
	pp.Collection(all...)
	if len(all) == 0 {
		pp.Line("Write your first entry with: journal add --title <title> <text>")
	}
	return nil
}
