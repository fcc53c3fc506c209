package wipe

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/prompt"
)

// ErrNotConfirmed is returned when the wipe was not confirmed.
var ErrNotConfirmed = errors.New("wipe: not confirmed")

// Wipe clears every entry and the profile name.
type Wipe struct {
	Service *app.Service

	// Yes skips the confirmation.
	Yes bool
	// Interactive is set when In is a terminal. Without it and without Yes
	// nothing is cleared.
	Interactive bool
	In          io.Reader

	Out io.Writer
}

func (n *Wipe) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not clear, no journal")
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if !n.Yes {
		if !n.Interactive || n.In == nil {
			return errors.Join(ErrNotConfirmed, errors.New("not a terminal, pass --yes to clear"))
		}
		pr := prompt.Prompter{In: n.In, Out: printers.Writer(n.Out)}
		ok, err := pr.Confirm("Delete every entry and your name?")
		if err != nil {
			return err
		}
		if !ok {
			pp.Line("Nothing was deleted.")
			return ErrNotConfirmed
		}
	}

	if err := n.Service.Clear(ctx); err != nil {
		return err
	}
	pp.Line("Journal cleared.")
	return nil
}
