package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMergeFlags(t *testing.T) {
	fs, flags := SetupMergeFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "json", flags.Format)
		assert.False(t, flags.Compact)
		assert.Empty(t, flags.Output)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "yaml", "--compact", "-o", "out.yaml", "-v", "a.json", "b.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "yaml", flags.Format)
		assert.True(t, flags.Compact)
		assert.Equal(t, "out.yaml", flags.Output)
		assert.True(t, flags.Verbose)
		assert.Equal(t, []string{"a.json", "b.json"}, fs.Args())
	})
}

func TestHandleMerge_NoArgs(t *testing.T) {
	err := HandleMerge([]string{})
	assert.Error(t, err)
}

func TestHandleMerge_OneArg(t *testing.T) {
	err := HandleMerge([]string{"a.json"})
	assert.Error(t, err)
}

func TestHandleMerge_Help(t *testing.T) {
	err := HandleMerge([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleMerge_InvalidFormat(t *testing.T) {
	err := HandleMerge([]string{"--format", "toml", "a.json", "b.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestHandleMerge_StdinTwice(t *testing.T) {
	err := HandleMerge([]string{"-", "-"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one document")
}

func TestHandleMerge(t *testing.T) {
	dir := t.TempDir()
	parent := writeFile(t, dir, "parent.json", `{"name":"base","tags":["a","b"],"limits":{"cpu":1,"mem":2}}`)
	child := writeFile(t, dir, "child.yaml", "name: child\n$tags[]: [c]\nlimits:\n  cpu: 4\n")
	grandchild := writeFile(t, dir, "grandchild.json", `{"$tags[0]":"z"}`)

	t.Run("stdout", func(t *testing.T) {
		out := captureStdout(t)
		require.NoError(t, HandleMerge([]string{"--compact", parent, child, grandchild}))
		assert.Equal(t, `{"name":"child","tags":["z","b","c"],"limits":{"cpu":4,"mem":2}}`+"\n", out.String())
	})

	t.Run("output file", func(t *testing.T) {
		outPath := filepath.Join(dir, "merged.json")
		require.NoError(t, HandleMerge([]string{"-o", outPath, parent, child}))

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"name\": \"child\"")
	})

	t.Run("stdin child", func(t *testing.T) {
		withStdin(t, `{"extra":true}`)
		out := captureStdout(t)
		require.NoError(t, HandleMerge([]string{"--compact", parent, "-"}))
		assert.Equal(t, `{"name":"base","tags":["a","b"],"limits":{"cpu":1,"mem":2},"extra":true}`+"\n", out.String())
	})

	t.Run("refuses to overwrite input", func(t *testing.T) {
		err := HandleMerge([]string{"-o", child, parent, child})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("missing input", func(t *testing.T) {
		err := HandleMerge([]string{parent, filepath.Join(dir, "nope.json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading")
	})
}
