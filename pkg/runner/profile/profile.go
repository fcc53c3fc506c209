package profile

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

// Profile shows the greeting, or saves a new name first when Name is set.
type Profile struct {
	Profiles app.Profiles
	Name     string

	Log *zap.Logger
	Out io.Writer
}

func (n *Profile) Do(ctx context.Context) error {
	if n.Profiles == nil {
		return errors.New("can not load profile, no journal")
	}

	s := app.NewSession(n.Profiles).WithLogger(n.Log)
	s.Start(ctx)

	if strings.TrimSpace(n.Name) != "" {
		if err := s.Onboard(ctx, n.Name); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(s.Greeting())
	if s.Stage() == app.StageOnboarding {
		pp.Line("Tell the journal with: journal name <your name>")
	}
	return nil
}
