package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/analysis"
)

// AnalyzeOptions
type AnalyzeOptions struct {
	Ops []string
}

func AddAnalyzeArgs(cmd *cobra.Command, o *AnalyzeOptions) {
	names := make([]string, 0, len(analysis.Operations()))
	for _, op := range analysis.Operations() {
		names = append(names, op.String())
	}
	cmd.Flags().StringSliceVar(&o.Ops, "op", []string{analysis.AnalyzeMood.String()},
		fmt.Sprintf("Operation to run, repeatable. One of %s.", strings.Join(names, ", ")))
}

// Operations parses the requested operations.
func (o *AnalyzeOptions) Operations() ([]analysis.Operation, error) {
	ops := make([]analysis.Operation, 0, len(o.Ops))
	for _, s := range o.Ops {
		op, err := analysis.ParseOperation(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
