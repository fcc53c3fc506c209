package profile

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/journal/pkg/journal"
	"tableflip.dev/journal/pkg/store"
)

func TestProfile(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	j := journal.New(store.NewMemory())

	var buf bytes.Buffer
	p := Profile{Profiles: j, Out: &buf}
	require.NoError(t, p.Do(ctx))
	assert.Contains(t, buf.String(), "What should we call you?")

	buf.Reset()
	p.Name = "  Ada  "
	require.NoError(t, p.Do(ctx))
	assert.Contains(t, buf.String(), "Welcome back, Ada!")

	buf.Reset()
	p.Name = ""
	require.NoError(t, p.Do(ctx))
	assert.Contains(t, buf.String(), "Welcome back, Ada!")
	assert.NotContains(t, buf.String(), "journal name")
}
