package printers

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatPretty, FormatJSON, FormatYAML}
}

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("printers: unknown format %q, want one of %s", format, strings.Join(Formats(), ", "))
	}
}

// IsPretty reports whether format asks for the colored, human readable
// rendering. The empty format is pretty.
func IsPretty(format string) bool {
	f := strings.ToLower(format)
	return f == "" || f == FormatPretty
}
