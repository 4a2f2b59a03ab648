package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/crsh/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default, cobra keeps parsed values
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func executeWithInput(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	require.NoError(t, rootCmd.Execute())
	return outBuf.String(), errBuf.String()
}

func execute(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()

	return executeWithInput(t, "", args...)
}

func TestPlayground_command(t *testing.T) {
	stdout, stderr := execute(t, "playground", "-c", "which ls pwd")

	assert.Equal(t, "/bin/ls\n/bin/pwd\n", stdout)
	assert.Contains(t, stderr, "[playground] ")
}

func TestPlayground_script(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "script"), []byte("cd /tmp\npwd\ncd\npwd\n"), 0644))

	stdout, _ := execute(t, "playground", "--root", root, "/script")

	assert.Equal(t, "/tmp\n/root\n", stdout)
	_, err := os.Stat(filepath.Join(root, "bin"))
	assert.True(t, os.IsNotExist(err), "host directory must not be modified")
}

func TestPlayground_interactive(t *testing.T) {
	stdout, _ := executeWithInput(t, "echo hi\nexit\necho never\n", "playground")

	assert.Equal(t, "crsh> hi\ncrsh> ", stdout)
}

func TestBuiltins(t *testing.T) {
	stdout, _ := execute(t, "builtins")

	assert.Contains(t, stdout, "/bin/ls, /usr/bin/ls\n")
	assert.Contains(t, stdout, "shell:cd\n")
	assert.Contains(t, stdout, "shell:exit\n")
	assert.Contains(t, stdout, "shell:.\n")
}

func TestInitAndEvents(t *testing.T) {
	dir := t.TempDir()

	_, stderr := execute(t, "init", dir)
	assert.Contains(t, stderr, config.ConfigurationName)

	execute(t, "--config", dir, "playground", "-c", "cd /tmp")
	execute(t, "--config", dir, "playground", "-c", "nope")

	contents, err := afero.ReadFile(afero.NewOsFs(), filepath.Join(dir, config.AppLogName))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "builtin")
	assert.Contains(t, string(contents), "unknown_command")

	stdout, _ := execute(t, "--config", dir, "events", "report")
	assert.Contains(t, stdout, "log_entries: 2")
	assert.Contains(t, stdout, "nope: 1")
}

func TestOpenEvents_default(t *testing.T) {
	events, closer, err := openEvents(config.Default())
	require.NoError(t, err)

	assert.NoError(t, events.Record("builtin", nil))
	assert.NoError(t, closer.Close())
}

func TestRecordAndReplay(t *testing.T) {
	castPath := filepath.Join(t.TempDir(), "session.cast")

	stdout, _ := execute(t, "playground", "--record", castPath, "-c", "echo hi")
	assert.Equal(t, "hi\n", stdout)

	contents, err := os.ReadFile(castPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"version":2`)
	assert.Contains(t, string(contents), `"o","hi\r\n"`)

	replayed, _ := execute(t, "replay", "--max-sleep", "0", castPath)
	assert.Equal(t, "hi\r\n", replayed)
}
