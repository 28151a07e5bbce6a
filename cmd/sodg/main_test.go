package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sodggo/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_ResolvesQuery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.hcl")
	src := `
vertex "root" {
  edges = { greeting = "hello" }
}
vertex "hello" {
  value = "hi"
}
`
	require.NoError(t, os.WriteFile(filePath, []byte(src), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"-resolve", "greeting", filePath})

	require.NoError(t, err)
	require.Equal(t, "greeting\tν1\t68-69\n", out.String())
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		vertex "root" {
			edges = {
		// Missing closing braces here
	`
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
