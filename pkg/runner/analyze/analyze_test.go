package analyze

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tableflip.dev/journal/pkg/analysis"
	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

type echoAnalyzer struct {
	err error
}

func (e echoAnalyzer) Analyze(_ context.Context, text string, op analysis.Operation) (*analysis.Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &analysis.Result{Operation: op, Text: op.String() + " of " + text, Model: "gemini-test"}, nil
}

func setup(t *testing.T, a app.Analyzer) (*app.Service, string) {
	t.Helper()
	j := journal.New(store.NewMemory())
	e, err := j.AddEntry(context.Background(), "Beach", "cold water")
	require.NoError(t, err)
	return &app.Service{Journal: j, Analyzer: a}, e.ID
}

func TestAnalyzePrintsInOrder(t *testing.T) {
	svc, id := setup(t, echoAnalyzer{})
	var buf bytes.Buffer
	n := Analyze{
		Service: svc,
		ID:      id,
		Ops:     []analysis.Operation{analysis.GiveWritingAdvice, analysis.AnalyzeMood},
		Out:     &buf,
	}
	require.NoError(t, n.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Beach")
	advice := strings.Index(out, "advice of cold water")
	mood := strings.Index(out, "mood of cold water")
	require.True(t, advice > 0 && mood > 0, out)
	assert.Less(t, advice, mood)
}

func TestAnalyzeEncodesOneResult(t *testing.T) {
	svc, id := setup(t, echoAnalyzer{})
	var buf bytes.Buffer
	n := Analyze{
		Service: svc,
		ID:      id,
		Ops:     []analysis.Operation{analysis.GenerateReflection},
		Format:  "json",
		Out:     &buf,
	}
	require.NoError(t, n.Do(context.Background()))
	assert.Contains(t, buf.String(), `"operation": "reflection"`)
	assert.NotContains(t, buf.String(), "Beach")
}

func TestAnalyzeReturnsAnalyzerError(t *testing.T) {
	svc, id := setup(t, echoAnalyzer{err: analysis.ErrNetwork})
	n := Analyze{Service: svc, ID: id, Ops: []analysis.Operation{analysis.AnalyzeMood}, Out: &bytes.Buffer{}}
	assert.True(t, errors.Is(n.Do(context.Background()), analysis.ErrNetwork))
}

func TestAnalyzeUnknownEntry(t *testing.T) {
	svc, _ := setup(t, echoAnalyzer{})
	n := Analyze{Service: svc, ID: "nope", Ops: []analysis.Operation{analysis.AnalyzeMood}, Out: &bytes.Buffer{}}
	assert.True(t, errors.Is(n.Do(context.Background()), journal.ErrNotFound))
}

func TestAnalyzeNeedsAnOperation(t *testing.T) {
	svc, id := setup(t, echoAnalyzer{})
	n := Analyze{Service: svc, ID: id, Out: &bytes.Buffer{}}
	assert.Error(t, n.Do(context.Background()))
}
