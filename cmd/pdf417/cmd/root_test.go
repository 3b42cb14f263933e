package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execCommand runs the root command with args and returns its combined
// output. Flag state is reset afterwards so tests stay independent.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().Visit(reset)
		c.PersistentFlags().Visit(reset)
	}
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "pdf417", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommandHelp(t *testing.T) {
	output, err := execCommand(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "PDF417")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "Usage:")
}

func TestRootCommandVersion(t *testing.T) {
	output, err := execCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, output, "pdf417 version")
}

func TestRootCommandSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, subcmd := range rootCmd.Commands() {
		names[subcmd.Name()] = true
	}
	for _, want := range []string{"decode", "generate", "serve"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestGetRootCommand(t *testing.T) {
	var cmd *cobra.Command = GetRootCommand()
	assert.Same(t, rootCmd, cmd)
}
