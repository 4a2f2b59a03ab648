package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/crsh/core/vos"
	"github.com/josephlewis42/crsh/core/vos/vostest"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleBytesToHuman() {

	// < 1k is presented directly
	fmt.Println(BytesToHuman(512))

	// Multiples > 10 are shown without decimal.
	fmt.Println(BytesToHuman(23 * 10e8))

	// Multiples < 10 are shown with decimal.
	fmt.Println(BytesToHuman(5 * 1024))

	// Output: 512
	// 23G
	// 5.1K
}

func TestAllCommands(t *testing.T) {
	for _, cmdEntry := range ListBuiltinCommands() {
		t.Run(strings.Join(cmdEntry.Names, ","), func(t *testing.T) {
			if cmdEntry.Proc == nil {
				t.Fatal("nil command", cmdEntry.Names)
			}
			assert.Len(t, cmdEntry.Names, 2)
		})
	}
}

func TestProcessResolver(t *testing.T) {
	assert.NotNil(t, ProcessResolver("/bin/echo"))
	assert.NotNil(t, ProcessResolver("/usr/bin/echo"))
	assert.Nil(t, ProcessResolver("/sbin/echo"))
	assert.Nil(t, ProcessResolver("echo"))
}

func TestInstallPrograms(t *testing.T) {
	fs := vos.NewMemFs()
	require.NoError(t, afero.WriteFile(fs, "/bin/echo", []byte("keep"), 0755))

	require.NoError(t, InstallPrograms(fs))

	for fullPath := range AllCommands {
		exists, err := afero.Exists(fs, fullPath)
		assert.NoError(t, err)
		assert.True(t, exists, fullPath)
	}

	contents, err := afero.ReadFile(fs, "/bin/echo")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(contents), "existing files aren't replaced")
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

func (gts goldenTestSuite) Run(t *testing.T, cmd vos.ProcessFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(cmd, tc.Args[0], tc.Args[1:]...)
			out, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, out)
		})
	}
}

func TestSimpleCommand_Help(t *testing.T) {
	for _, cmdEntry := range ListBuiltinCommands() {
		name := filepath.Base(cmdEntry.Names[0])
		t.Run(name, func(t *testing.T) {
			cmd := vostest.Command(cmdEntry.Proc, name, "--help")
			out, err := cmd.CombinedOutput()
			require.NoError(t, err)

			assert.Equal(t, 0, cmd.ExitStatus)
			assert.True(t, strings.HasPrefix(string(out), "usage: "+name), string(out))
		})
	}
}

func TestSimpleCommand_BadFlag(t *testing.T) {
	cmd := vostest.Command(Pwd, "pwd", "--no-such-flag")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)

	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Contains(t, string(out), "error: ")
	assert.Contains(t, string(out), "usage: pwd")
}
