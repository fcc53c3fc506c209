package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/config"
	"tableflip.dev/journal/pkg/printers"
)

// Info prints where the journal lives and how analysis is configured.
type Info struct {
	Config  *config.Config
	Service *app.Service
	// Profiles is read for the stored name; nil skips it.
	Profiles app.Profiles

	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := printers.Writer(n.Out)

	if override := os.Getenv("JOURNAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "JOURNAL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "JOURNAL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to open the journal")
	}

	file := n.Config.File
	if file == "" {
		file = "none"
	}
	key := "not set"
	if n.Config.Gemini.APIKey != "" {
		key = "set"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config file:", file)
	tbl.AddRow("Backend:", n.Config.Backend)
	tbl.AddRow("Path:", n.Config.BasePath())

	if n.Profiles != nil {
		name, ok, err := n.Profiles.LoadProfileName(ctx)
		switch {
		case err != nil:
			tbl.AddRow("Name:", "unreadable: "+err.Error())
		case ok:
			tbl.AddRow("Name:", name)
		default:
			tbl.AddRow("Name:", "not set")
		}
	}

	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	tbl.AddRow("Entries:", len(all))
	tbl.AddRow("Model:", n.Config.Gemini.Model)
	tbl.AddRow("API key:", key)
	if n.Config.Gemini.BaseURL != "" {
		tbl.AddRow("Endpoint:", n.Config.Gemini.BaseURL)
	}

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
