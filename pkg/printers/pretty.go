package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/entry"
)

const defaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	// Width is the wrap width for entry and analysis text.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	return Writer(pp.Out)
}

// Writer returns w, or color.Output when w is nil.
func Writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Line prints a plain line of text.
func (pp *PrettyPrint) Line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(pp.out(), format+"\n", args...)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Collection prints entries as a table, one row each.
func (pp *PrettyPrint) Collection(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		when, title, summary := e.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), f.Sprint(when), b.Sprint(title), summary)
		} else {
			tbl.AddRow(f.Sprint(when), b.Sprint(title), summary)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints one entry in full.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	pp.Title(e.Title)
	f := color.New(color.Faint)
	if pp.ShowID {
		_, _ = f.Fprintf(pp.out(), "%s  %s\n", e.Timestamp, e.ID)
	} else {
		_, _ = f.Fprintln(pp.out(), e.Timestamp)
	}
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Text, pp.width()))
	pp.NewLine()
}

// Analysis prints a generated result under a heading naming the operation.
func (pp *PrettyPrint) Analysis(res *analysis.Result) {
	h := color.New(color.FgCyan, color.Bold)
	f := color.New(color.Faint)
	_, _ = h.Fprint(pp.out(), heading(res.Operation.String()))
	_, _ = f.Fprintf(pp.out(), "  (%s)\n", res.Model)
	body := wordwrap.String(strings.TrimSpace(res.Text), pp.width()-2)
	_, _ = fmt.Fprintln(pp.out(), indent.String(body, 2))
	pp.NewLine()
}

func heading(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
