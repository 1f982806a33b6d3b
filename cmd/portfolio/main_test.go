package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traysir/portfolio/internal/content"
)

func TestContentCmd_EmbeddedDocument(t *testing.T) {
	lookupEnv = func(string) string { return "" }
	t.Cleanup(func() { lookupEnv = os.Getenv })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"content"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Bayden Blackwell (BB)")
	assert.Contains(t, out.String(), "featured:       Arrowfall")
	assert.Contains(t, out.String(), "ok")
}

func TestContentCmd_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  email: nope\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"content", "--content", path})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrInvalid)
}

func TestTUICmd_RefusesWithoutTerminal(t *testing.T) {
	cmd := newTUICmd(func() bool { return false })
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errNotInteractive)
}
