package analysis

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Operation selects what the model is asked to do with an entry.
type Operation int

const (
	AnalyzeMood Operation = iota + 1
	GenerateReflection
	GiveWritingAdvice
)

type operation struct {
	op      Operation
	name    string
	aliases []string
	meaning string
	prompt  *template.Template
}

const instruction = "Remember to not write any extra descriptive lines in the response, " +
	"STRICTLY WRITE ONLY WHAT IS ASKED."

// operations is the prompt table. Adding an operation is adding a row.
var operations = []operation{
	{
		op:      AnalyzeMood,
		name:    "mood",
		aliases: []string{"analyze-mood", "analyzemood"},
		meaning: "Name the mood of the entry and explain it briefly.",
		prompt: prompt("mood", `Read this journal entry and analyze the mood of the writer. `+
			`Respond with a short heading that names the mood, then a short explanation of why. `+
			instruction+` The journal is:
{{.Text}}`),
	},
	{
		op:      GenerateReflection,
		name:    "reflection",
		aliases: []string{"reflect", "generate-reflection", "generatereflection"},
		meaning: "Up to eight reflections, addressed to you, as bullet points.",
		prompt: prompt("reflection", `Read this journal entry and write reflections on it for the writer. `+
			`Address the writer as "you" and use bullet points, no more than 8 of them. `+
			instruction+` The journal is:
{{.Text}}`),
	},
	{
		op:      GiveWritingAdvice,
		name:    "advice",
		aliases: []string{"writing-advice", "give-writing-advice", "givewritingadvice"},
		meaning: "Short advice on the writing itself, addressed to you.",
		prompt: prompt("advice", `Read this journal entry and give the writer advice on their writing. `+
			`Address the writer as "you" and answer in short paragraphs, under 120 words in total. `+
			instruction+` The journal is:
{{.Text}}`),
	},
}

func prompt(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

func lookup(op Operation) (operation, bool) {
	for _, o := range operations {
		if o.op == op {
			return o, true
		}
	}
	return operation{}, false
}

// Operations lists every operation in display order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operations))
	for _, o := range operations {
		ops = append(ops, o.op)
	}
	return ops
}

func (o Operation) String() string {
	if def, ok := lookup(o); ok {
		return def.name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Meaning is a one line description of the operation.
func (o Operation) Meaning() string {
	def, _ := lookup(o)
	return def.meaning
}

// Aliases are the other names ParseOperation accepts for o.
func (o Operation) Aliases() []string {
	def, _ := lookup(o)
	return def.aliases
}

func (o Operation) MarshalText() ([]byte, error) {
	if _, ok := lookup(o); !ok {
		return nil, fmt.Errorf("%w: unknown operation %d", ErrValidation, int(o))
	}
	return []byte(o.String()), nil
}

func (o *Operation) UnmarshalText(b []byte) error {
	op, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOperation resolves an operation from its name or one of its aliases,
// ignoring case.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range operations {
		if o.name == s {
			return o.op, nil
		}
		for _, alias := range o.aliases {
			if alias == s {
				return o.op, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", ErrValidation, s)
}

// Render builds the prompt for op around the entry text.
func Render(op Operation, text string) (string, error) {
	def, ok := lookup(op)
	if !ok {
		return "", fmt.Errorf("%w: unknown operation %d", ErrValidation, int(op))
	}
	var buf bytes.Buffer
	if err := def.prompt.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
