package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrectCmd_Flags(t *testing.T) {
	cmd := newCorrectCmd()
	flag := cmd.Flags().Lookup("input")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestRunCorrect_RewritesLinesFromStdin(t *testing.T) {
	dictPath := writeDictionaryFixture(t)
	configPath := filepath.Join(t.TempDir(), "dicrector.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
dictionaries:
  - name: animals
    path: `+dictPath+`
`), 0o644))
	configFile = configPath
	t.Cleanup(func() { configFile = "" })

	cmd := newCorrectCmd()
	cmd.SetContext(context.Background())
	cmd.SetIn(bytes.NewBufferString("the cat sat\nthe dog ran\n"))
	out := new(bytes.Buffer)
	cmd.SetOut(out)

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Equal(t, "the dog sat\nthe dog ran\n", out.String())
}

func TestRunCorrect_InputFlagReadsFromFile(t *testing.T) {
	dictPath := writeDictionaryFixture(t)
	configPath := filepath.Join(t.TempDir(), "dicrector.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
dictionaries:
  - name: animals
    path: `+dictPath+`
`), 0o644))
	configFile = configPath
	t.Cleanup(func() { configFile = "" })

	inputPath := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("cat\n"), 0o644))

	cmd := newCorrectCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("input", inputPath))
	out := new(bytes.Buffer)
	cmd.SetOut(out)

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Equal(t, "dog\n", out.String())
}

func TestRunCorrect_MissingInputFileErrors(t *testing.T) {
	configFile = ""

	cmd := newCorrectCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("input", filepath.Join(t.TempDir(), "missing.txt")))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
}
