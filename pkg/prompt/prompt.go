// Package prompt asks for command input interactively.
package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/journal/pkg/analysis"
)

var (
	errRequired = errors.New("required")
	errYesNo    = errors.New("answer y or n")
)

// Prompter reads answers from In and draws prompts on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// required rejects answers that are blank once trimmed, the same rule the
// journal applies when saving.
func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errRequired
	}
	return nil
}

func (p Prompter) ask(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  required,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	answer, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Name asks what the writer wants to be called.
func (p Prompter) Name() (string, error) {
	return p.ask("What should we call you", "")
}

// Entry asks for the title and text of a new entry. A non-empty title is
// offered as the default.
func (p Prompter) Entry(title string) (string, string, error) {
	title, err := p.ask("Title", title)
	if err != nil {
		return "", "", err
	}
	text, err := p.ask("Entry", "")
	if err != nil {
		return "", "", err
	}
	return title, text, nil
}

func yesNo(input string) error {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes", "n", "no":
		return nil
	}
	return errYesNo
}

// Confirm asks a yes or no question. Only y or yes is a yes. An empty
// answer, or input that ends or is interrupted first, is a no.
func (p Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label + " [y/N]",
		Templates: templates,
		Validate:  yesNo,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	answer, err := prompt.Run()
	switch {
	case errors.Is(err, promptui.ErrEOF), errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	case err != nil:
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

type opItem struct {
	Name    string
	Aliases string
	Meaning string
}

// Operation picks one analysis operation from a list.
func (p Prompter) Operation() (analysis.Operation, error) {
	ops := analysis.Operations()
	items := make([]opItem, 0, len(ops))
	for _, op := range ops {
		items = append(items, opItem{
			Name:    op.String(),
			Aliases: strings.Join(op.Aliases(), ", "),
			Meaning: op.Meaning(),
		})
	}

	sel := promptui.Select{
		HideHelp: true,
		Label:    "Analyze",
		Items:    items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ .Name | bold }} {{ .Meaning | green }}",
			Inactive: "   {{ .Name }} {{ .Meaning | cyan }}",
			Selected: "{{ .Name | bold }}",
			Details: `
--------- Aliases ----------
{{ .Aliases }}
`,
		},
		Searcher: func(input string, index int) bool {
			name := strings.ToLower(items[index].Name + items[index].Aliases)
			return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
		},
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}

	i, _, err := sel.Run()
	if err != nil {
		return 0, err
	}
	return ops[i], nil
}

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return os.Stdin
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return os.Stdout
	}
	return nopCloser{p.Out}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
