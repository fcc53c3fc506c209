package info

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/config"
	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/store"
)

func TestInfo(t *testing.T) {
	t.Setenv("JOURNAL_CONFIG_PATH", "")
	ctx := context.Background()
	j := journal.New(store.NewMemory())
	require.NoError(t, j.SaveProfileName(ctx, "Ada"))
	_, err := j.AddEntry(ctx, "Beach", "cold water")
	require.NoError(t, err)

	cfg := &config.Config{Path: "/tmp/journal", Backend: "memory"}
	cfg.Gemini.Model = "gemini-test"

	var buf bytes.Buffer
	n := Info{Config: cfg, Service: &app.Service{Journal: j}, Profiles: j, Out: &buf}
	require.NoError(t, n.Do(ctx))

	out := buf.String()
	assert.Contains(t, out, "JOURNAL_CONFIG_PATH env var not set")
	assert.Contains(t, out, "/tmp/journal")
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "gemini-test")
	assert.Contains(t, out, "not set")
	assert.Regexp(t, `Entries:\s+1`, out)
}
